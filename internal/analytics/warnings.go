package analytics

import (
	"fmt"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
)

// Default early-warning thresholds, both in days
const (
	DefaultVarianceThreshold  = 2.0
	DefaultDepletionThreshold = 14
)

// WarningKind classifies an early-warning signal
type WarningKind string

const (
	WarningSupplierVariance   WarningKind = "supplier_variance"
	WarningInventoryDepletion WarningKind = "inventory_depletion"
)

// Warning is a leading indicator of risk
type Warning struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

// WarningThresholds tunes EarlyWarnings. Zero values fall back to the defaults.
type WarningThresholds struct {
	VarianceDays  float64
	DepletionDays int
}

func (t WarningThresholds) withDefaults() WarningThresholds {
	if t.VarianceDays <= 0 {
		t.VarianceDays = DefaultVarianceThreshold
	}
	if t.DepletionDays <= 0 {
		t.DepletionDays = DefaultDepletionThreshold
	}
	return t
}

// EarlyWarnings flags suppliers with unstable delivery times and storage
// lines projected to run dry within the depletion window. Supplier alerts
// come first.
func EarlyWarnings(data domain.ScenarioData, forecast []WarehouseForecast, thresholds WarningThresholds) []Warning {
	thresholds = thresholds.withDefaults()
	warnings := make([]Warning, 0)

	for _, s := range data.Suppliers {
		if s.DeliveryTimeVariance <= thresholds.VarianceDays {
			continue
		}
		warnings = append(warnings, Warning{
			ID:   s.ID,
			Name: s.Name,
			Kind: WarningSupplierVariance,
			Message: fmt.Sprintf("High delivery time variance: %.1f days (threshold: %g days)",
				s.DeliveryTimeVariance, thresholds.VarianceDays),
		})
	}

	for _, wf := range forecast {
		for _, item := range wf.Items {
			day, ok := item.StockoutDay()
			if !ok || day > thresholds.DepletionDays {
				continue
			}
			warnings = append(warnings, Warning{
				ID:   wf.WarehouseID + "-" + item.Item,
				Name: wf.WarehouseName + " - " + item.Item,
				Kind: WarningInventoryDepletion,
				Message: fmt.Sprintf("Projected to stock out in %d days (threshold: %d days)",
					day, thresholds.DepletionDays),
			})
		}
	}

	return warnings
}
