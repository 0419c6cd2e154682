package analytics

import (
	"fmt"
	"strings"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
)

const (
	highDelaySupplierHours = 5.0
	lowCoverageDays        = 7.0
)

// NetworkProfile is the fact sheet a company summary is written from
type NetworkProfile struct {
	Suppliers          int      `json:"suppliers"`
	Warehouses         int      `json:"warehouses"`
	Customers          int      `json:"customers"`
	TotalDemand        float64  `json:"totalDemand"`
	TotalInventory     float64  `json:"totalInventory"`
	HighDelaySuppliers []string `json:"highDelaySuppliers"`
	LowCoverageSites   []string `json:"lowCoverageSites"`
}

// Profile collects the headline facts of a company network
func Profile(data domain.ScenarioData) NetworkProfile {
	p := NetworkProfile{
		Suppliers:          len(data.Suppliers),
		Warehouses:         len(data.Warehouses),
		Customers:          len(data.Customers),
		HighDelaySuppliers: []string{},
		LowCoverageSites:   []string{},
	}

	for _, c := range data.Customers {
		p.TotalDemand += c.Demand
	}
	for _, s := range data.Suppliers {
		if s.AverageDelayHours > highDelaySupplierHours {
			p.HighDelaySuppliers = append(p.HighDelaySuppliers, s.Name)
		}
	}

	demand := make(map[string]float64, len(data.Customers))
	for _, c := range data.Customers {
		demand[c.ID] = c.Demand
	}
	for _, wh := range data.Warehouses {
		p.TotalInventory += wh.InventoryLevel

		var daily float64
		for _, conn := range data.Connections {
			if conn.From == wh.ID {
				daily += demand[conn.To]
			}
		}
		if daily > 0 && wh.InventoryLevel/daily < lowCoverageDays {
			p.LowCoverageSites = append(p.LowCoverageSites, wh.Name)
		}
	}

	return p
}

// Summarize writes a one-sentence description of the company network,
// leading with its most pressing risk.
func Summarize(company domain.Company) string {
	p := Profile(company.Data)

	if p.Warehouses == 0 && p.Suppliers == 0 && p.Customers == 0 {
		return fmt.Sprintf("%s has no network nodes configured yet.", company.Name)
	}

	shape := fmt.Sprintf("%d %s, %d %s and %d %s moving %s units a day",
		p.Suppliers, plural(p.Suppliers, "supplier"),
		p.Warehouses, plural(p.Warehouses, "warehouse"),
		p.Customers, plural(p.Customers, "customer"),
		formatUnits(p.TotalDemand))

	var risks []string
	if len(p.HighDelaySuppliers) > 0 {
		risks = append(risks, "inbound delays at "+strings.Join(p.HighDelaySuppliers, ", "))
	}
	if len(p.LowCoverageSites) > 0 {
		risks = append(risks, "under a week of stock at "+strings.Join(p.LowCoverageSites, ", "))
	}

	if len(risks) == 0 {
		return fmt.Sprintf("A well-balanced network of %s with healthy inventory coverage.", shape)
	}
	return fmt.Sprintf("A network of %s, exposed to %s.", shape, strings.Join(risks, " and "))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// formatUnits renders a quantity with thousands separators, no decimals
func formatUnits(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
