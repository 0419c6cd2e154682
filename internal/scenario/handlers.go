package scenario

import "github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"

const (
	outageDelayHours = 99.0
	demandSpikeRatio = 1.5
)

func (a UpdateCompanyData) apply(c domain.Company) (domain.Company, bool) {
	next := c.Clone()
	p := a.Patch.clone()

	if p.NetworkName != nil {
		next.Data.NetworkName = *p.NetworkName
	}
	if p.NetworkMetrics != nil {
		next.Data.NetworkMetrics = *p.NetworkMetrics
	}
	if p.Suppliers != nil {
		next.Data.Suppliers = p.Suppliers
	}
	if p.Warehouses != nil {
		next.Data.Warehouses = p.Warehouses
	}
	if p.Customers != nil {
		next.Data.Customers = p.Customers
	}
	if p.Connections != nil {
		next.Data.Connections = p.Connections
	}
	if p.ResilienceScore != nil {
		next.Data.ResilienceScore = *p.ResilienceScore
	}
	return next, true
}

// clone detaches the patch from caller-owned slices and pointers
func (p DataPatch) clone() DataPatch {
	d := domain.ScenarioData{
		Suppliers:   p.Suppliers,
		Warehouses:  p.Warehouses,
		Customers:   p.Customers,
		Connections: p.Connections,
	}.Clone()

	out := DataPatch{
		NetworkName:     p.NetworkName,
		ResilienceScore: p.ResilienceScore,
		Suppliers:       d.Suppliers,
		Warehouses:      d.Warehouses,
		Customers:       d.Customers,
		Connections:     d.Connections,
	}
	if p.NetworkMetrics != nil {
		m := p.NetworkMetrics.Clone()
		out.NetworkMetrics = &m
	}
	return out
}

// normalizeNode copies the payload and makes itemized storage authoritative
// for a warehouse's inventory level.
func normalizeNode(n domain.Node) domain.Node {
	n = n.Clone()
	if n.Kind == domain.KindWarehouse && n.Warehouse != nil && len(n.Warehouse.Storage) > 0 {
		n.Warehouse.InventoryLevel = n.Warehouse.StorageTotal()
	}
	return n
}

func (a AddNode) apply(c domain.Company) (domain.Company, bool) {
	if !a.Node.Valid() {
		return c, false
	}
	n := normalizeNode(a.Node)
	next := c.Clone()

	switch n.Kind {
	case domain.KindSupplier:
		next.Data.Suppliers = append(next.Data.Suppliers, *n.Supplier)
	case domain.KindWarehouse:
		next.Data.Warehouses = append(next.Data.Warehouses, *n.Warehouse)
	case domain.KindCustomer:
		next.Data.Customers = append(next.Data.Customers, *n.Customer)
	}
	return next, true
}

func (a UpdateNode) apply(c domain.Company) (domain.Company, bool) {
	if !a.Node.Valid() {
		return c, false
	}
	n := normalizeNode(a.Node)
	next := c.Clone()
	id := n.ID()
	found := false

	switch n.Kind {
	case domain.KindSupplier:
		for i := range next.Data.Suppliers {
			if next.Data.Suppliers[i].ID == id {
				next.Data.Suppliers[i] = *n.Supplier
				found = true
			}
		}
	case domain.KindWarehouse:
		for i := range next.Data.Warehouses {
			if next.Data.Warehouses[i].ID == id {
				next.Data.Warehouses[i] = *n.Warehouse
				found = true
			}
		}
	case domain.KindCustomer:
		for i := range next.Data.Customers {
			if next.Data.Customers[i].ID == id {
				next.Data.Customers[i] = *n.Customer
				found = true
			}
		}
	}

	if !found {
		return c, false
	}
	return next, true
}

func (a DeleteNode) apply(c domain.Company) (domain.Company, bool) {
	if _, ok := domain.ParseNodeKind(string(a.Kind)); !ok || a.NodeID == "" {
		return c, false
	}
	next := c.Clone()
	d := &next.Data

	switch a.Kind {
	case domain.KindSupplier:
		d.Suppliers = filter(d.Suppliers, func(s domain.Supplier) bool { return s.ID != a.NodeID })
	case domain.KindWarehouse:
		d.Warehouses = filter(d.Warehouses, func(w domain.Warehouse) bool { return w.ID != a.NodeID })
	case domain.KindCustomer:
		d.Customers = filter(d.Customers, func(cu domain.Customer) bool { return cu.ID != a.NodeID })
	}
	d.Connections = filter(d.Connections, func(conn domain.Connection) bool { return !conn.Touches(a.NodeID) })

	return next, true
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (a UpdateConnection) apply(c domain.Company) (domain.Company, bool) {
	next := c.Clone()
	found := false
	for i, conn := range next.Data.Connections {
		if conn.From == a.Connection.From && conn.To == a.Connection.To {
			next.Data.Connections[i] = a.Connection
			found = true
		}
	}
	if !found {
		return c, false
	}
	return next, true
}

func (a ApplyStressTest) apply(c domain.Company) (domain.Company, bool) {
	if a.Test != StressSupplierOutage && a.Test != StressDemandSpike {
		return c, false
	}

	next := c.Clone()
	next.Data = c.BaseData.Clone()

	target, ok := StressTarget(next.Data, a.Test)
	if !ok {
		// nothing to perturb, the live view falls back to the baseline
		return next, true
	}

	switch a.Test {
	case StressSupplierOutage:
		for i := range next.Data.Suppliers {
			if next.Data.Suppliers[i].ID == target {
				next.Data.Suppliers[i].SupplyCapacity = 0
				next.Data.Suppliers[i].AverageDelayHours = outageDelayHours
			}
		}
	case StressDemandSpike:
		for i := range next.Data.Customers {
			if next.Data.Customers[i].ID == target {
				next.Data.Customers[i].Demand *= demandSpikeRatio
			}
		}
	}
	return next, true
}

func (a ResetScenario) apply(c domain.Company) (domain.Company, bool) {
	next := c.Clone()
	next.Data = c.BaseData.Clone()
	return next, true
}

// Target edits are mirrored into the baseline so a pending stress test can
// be reset without losing them.

func (a UpdateNetworkMetricTarget) apply(c domain.Company) (domain.Company, bool) {
	next := c.Clone()
	if !next.Data.NetworkMetrics.SetTarget(a.Metric, a.Target) {
		return c, false
	}
	next.BaseData.NetworkMetrics.SetTarget(a.Metric, a.Target)
	return next, true
}

func (a UpdateWarehouseMetricTarget) apply(c domain.Company) (domain.Company, bool) {
	next := c.Clone()
	wh, ok := next.Data.FindWarehouse(a.WarehouseID)
	if !ok || !wh.Metrics.SetTarget(a.Metric, a.Target) {
		return c, false
	}
	if base, ok := next.BaseData.FindWarehouse(a.WarehouseID); ok {
		base.Metrics.SetTarget(a.Metric, a.Target)
	}
	return next, true
}
