package domain

// Clone methods produce copies that share no slices or pointers with the
// receiver. A nil slice or pointer stays nil; an empty slice stays empty.

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneDetail(in *MetricDetail) *MetricDetail {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}

// Clone deep-copies the metrics bundle
func (m Metrics) Clone() Metrics {
	out := m
	out.PickingSpeed = cloneDetail(m.PickingSpeed)
	out.PackingEfficiency = cloneDetail(m.PackingEfficiency)
	out.DispatchTimeliness = cloneDetail(m.DispatchTimeliness)
	return out
}

func (s Supplier) Clone() Supplier {
	out := s
	out.MaterialsSupplied = cloneStrings(s.MaterialsSupplied)
	return out
}

func (w Warehouse) Clone() Warehouse {
	out := w
	out.Metrics = w.Metrics.Clone()
	if w.Storage != nil {
		out.Storage = make([]StorageItem, len(w.Storage))
		copy(out.Storage, w.Storage)
	}
	return out
}

func (c Customer) Clone() Customer {
	out := c
	out.Requirements = cloneStrings(c.Requirements)
	return out
}

// Clone deep-copies the node and its payload
func (n Node) Clone() Node {
	out := Node{Kind: n.Kind}
	if n.Supplier != nil {
		s := n.Supplier.Clone()
		out.Supplier = &s
	}
	if n.Warehouse != nil {
		w := n.Warehouse.Clone()
		out.Warehouse = &w
	}
	if n.Customer != nil {
		c := n.Customer.Clone()
		out.Customer = &c
	}
	return out
}

// Clone deep-copies the whole snapshot
func (d ScenarioData) Clone() ScenarioData {
	out := d
	out.NetworkMetrics = d.NetworkMetrics.Clone()

	if d.Suppliers != nil {
		out.Suppliers = make([]Supplier, len(d.Suppliers))
		for i, s := range d.Suppliers {
			out.Suppliers[i] = s.Clone()
		}
	}
	if d.Warehouses != nil {
		out.Warehouses = make([]Warehouse, len(d.Warehouses))
		for i, w := range d.Warehouses {
			out.Warehouses[i] = w.Clone()
		}
	}
	if d.Customers != nil {
		out.Customers = make([]Customer, len(d.Customers))
		for i, c := range d.Customers {
			out.Customers[i] = c.Clone()
		}
	}
	if d.Connections != nil {
		out.Connections = make([]Connection, len(d.Connections))
		copy(out.Connections, d.Connections)
	}
	return out
}

func (c Company) Clone() Company {
	out := c
	out.Data = c.Data.Clone()
	out.BaseData = c.BaseData.Clone()
	return out
}

// CloneCompanies deep-copies a company list
func CloneCompanies(in []Company) []Company {
	if in == nil {
		return nil
	}
	out := make([]Company, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
