package analytics

import (
	"math"
	"slices"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
)

// DefaultForecastDays is the horizon used when callers pass a non-positive one.
const DefaultForecastDays = 60

// ForecastPoint is the projected stock of one item on one day
type ForecastPoint struct {
	Day       int     `json:"day"`
	Inventory float64 `json:"inventory"`
}

// ItemForecast projects a single storage line
type ItemForecast struct {
	Item          string          `json:"item"`
	DailyInbound  float64         `json:"dailyInbound"`
	DailyOutbound float64         `json:"dailyOutbound"`
	Points        []ForecastPoint `json:"points"`
}

// StockoutDay returns the first day the projection hits zero.
func (f ItemForecast) StockoutDay() (int, bool) {
	for _, p := range f.Points {
		if p.Inventory == 0 {
			return p.Day, true
		}
	}
	return 0, false
}

// WarehouseForecast groups the item projections of one warehouse
type WarehouseForecast struct {
	WarehouseID   string         `json:"warehouseId"`
	WarehouseName string         `json:"warehouseName"`
	Items         []ItemForecast `json:"items"`
}

// ForecastNetwork projects every storage line of every warehouse over days.
// Supplier capacity is split evenly across the materials a supplier ships and
// customer demand evenly across its requirements.
func ForecastNetwork(data domain.ScenarioData, days int) []WarehouseForecast {
	if days <= 0 {
		days = DefaultForecastDays
	}

	suppliers := make(map[string]domain.Supplier, len(data.Suppliers))
	for _, s := range data.Suppliers {
		suppliers[s.ID] = s
	}
	customers := make(map[string]domain.Customer, len(data.Customers))
	for _, c := range data.Customers {
		customers[c.ID] = c
	}

	result := make([]WarehouseForecast, 0, len(data.Warehouses))
	for _, wh := range data.Warehouses {
		forecast := WarehouseForecast{
			WarehouseID:   wh.ID,
			WarehouseName: wh.Name,
			Items:         make([]ItemForecast, 0, len(wh.Storage)),
		}

		for _, line := range wh.Storage {
			var inbound, outbound float64
			for _, conn := range data.Connections {
				if conn.To == wh.ID {
					if s, ok := suppliers[conn.From]; ok && slices.Contains(s.MaterialsSupplied, line.Item) {
						inbound += s.SupplyCapacity / float64(max(len(s.MaterialsSupplied), 1))
					}
				}
				if conn.From == wh.ID {
					if c, ok := customers[conn.To]; ok && slices.Contains(c.Requirements, line.Item) {
						outbound += c.Demand / float64(max(len(c.Requirements), 1))
					}
				}
			}

			forecast.Items = append(forecast.Items, ItemForecast{
				Item:          line.Item,
				DailyInbound:  inbound,
				DailyOutbound: outbound,
				Points:        project(line.Quantity, inbound-outbound, days),
			})
		}

		result = append(result, forecast)
	}

	return result
}

func project(start, net float64, days int) []ForecastPoint {
	points := make([]ForecastPoint, 0, days+1)
	current := start
	for day := 0; day <= days; day++ {
		points = append(points, ForecastPoint{Day: day, Inventory: math.Round(current)})
		current = math.Max(0, current+net)
	}
	return points
}

// StockoutStatus buckets days of cover
type StockoutStatus string

const (
	StockoutCritical StockoutStatus = "critical"
	StockoutWarning  StockoutStatus = "warning"
	StockoutHealthy  StockoutStatus = "healthy"
)

const (
	criticalCoverDays = 7
	warningCoverDays  = 30
)

// Outlook is the days-of-cover view of one warehouse. DaysUntilStockout is
// nil when the warehouse serves no demand.
type Outlook struct {
	WarehouseID       string         `json:"warehouseId"`
	WarehouseName     string         `json:"warehouseName"`
	DailyDemand       float64        `json:"dailyDemand"`
	DaysUntilStockout *int           `json:"daysUntilStockout"`
	Status            StockoutStatus `json:"status"`
}

// StockoutOutlook computes whole-warehouse days of cover against outbound demand.
func StockoutOutlook(data domain.ScenarioData) []Outlook {
	demand := make(map[string]float64, len(data.Customers))
	for _, c := range data.Customers {
		demand[c.ID] = c.Demand
	}

	result := make([]Outlook, 0, len(data.Warehouses))
	for _, wh := range data.Warehouses {
		// each customer counts once even with parallel edges
		served := make(map[string]bool)
		var daily float64
		for _, conn := range data.Connections {
			if conn.From != wh.ID || served[conn.To] {
				continue
			}
			if d, ok := demand[conn.To]; ok {
				served[conn.To] = true
				daily += d
			}
		}

		o := Outlook{
			WarehouseID:   wh.ID,
			WarehouseName: wh.Name,
			DailyDemand:   daily,
			Status:        StockoutHealthy,
		}
		if daily > 0 {
			days := int(math.Floor(wh.InventoryLevel / daily))
			o.DaysUntilStockout = &days
			switch {
			case days < criticalCoverDays:
				o.Status = StockoutCritical
			case days < warningCoverDays:
				o.Status = StockoutWarning
			}
		}

		result = append(result, o)
	}

	return result
}
