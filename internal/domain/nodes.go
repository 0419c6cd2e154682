package domain

import "strings"

// NodeKind tags every node with its role in the network
type NodeKind string

const (
	KindSupplier  NodeKind = "supplier"
	KindWarehouse NodeKind = "warehouse"
	KindCustomer  NodeKind = "customer"
)

var nodeKindLabels = map[NodeKind]string{
	KindSupplier:  "Supplier",
	KindWarehouse: "Warehouse",
	KindCustomer:  "Customer",
}

// Label returns a human-readable label for the kind.
func (k NodeKind) Label() string {
	if label, ok := nodeKindLabels[k]; ok {
		return label
	}

	return "Unknown"
}

// ParseNodeKind returns the kind for a given label (case-insensitive).
func ParseNodeKind(label string) (NodeKind, bool) {
	kind := NodeKind(strings.ToLower(strings.TrimSpace(label)))
	_, ok := nodeKindLabels[kind]

	return kind, ok
}

// Node is a tagged union over the three node types. Exactly one of the
// pointers matching Kind is set.
type Node struct {
	Kind      NodeKind   `json:"kind"`
	Supplier  *Supplier  `json:"supplier,omitempty"`
	Warehouse *Warehouse `json:"warehouse,omitempty"`
	Customer  *Customer  `json:"customer,omitempty"`
}

func SupplierNode(s Supplier) Node   { return Node{Kind: KindSupplier, Supplier: &s} }
func WarehouseNode(w Warehouse) Node { return Node{Kind: KindWarehouse, Warehouse: &w} }
func CustomerNode(c Customer) Node   { return Node{Kind: KindCustomer, Customer: &c} }

// Valid reports whether the payload matching Kind is present
func (n Node) Valid() bool {
	switch n.Kind {
	case KindSupplier:
		return n.Supplier != nil
	case KindWarehouse:
		return n.Warehouse != nil
	case KindCustomer:
		return n.Customer != nil
	}
	return false
}

// ID returns the id of the wrapped node, empty when the node is not valid
func (n Node) ID() string {
	if !n.Valid() {
		return ""
	}
	switch n.Kind {
	case KindSupplier:
		return n.Supplier.ID
	case KindWarehouse:
		return n.Warehouse.ID
	default:
		return n.Customer.ID
	}
}

// Name returns the display name of the wrapped node
func (n Node) Name() string {
	if !n.Valid() {
		return ""
	}
	switch n.Kind {
	case KindSupplier:
		return n.Supplier.Name
	case KindWarehouse:
		return n.Warehouse.Name
	default:
		return n.Customer.Name
	}
}

// Credentials returns the login pair of the wrapped node
func (n Node) Credentials() Credentials {
	if !n.Valid() {
		return Credentials{}
	}
	switch n.Kind {
	case KindSupplier:
		return n.Supplier.Credentials
	case KindWarehouse:
		return n.Warehouse.Credentials
	default:
		return n.Customer.Credentials
	}
}

// Nodes lists every node of the snapshot, suppliers first, then warehouses and customers
func (d *ScenarioData) Nodes() []Node {
	nodes := make([]Node, 0, len(d.Suppliers)+len(d.Warehouses)+len(d.Customers))
	for _, s := range d.Suppliers {
		nodes = append(nodes, SupplierNode(s))
	}
	for _, w := range d.Warehouses {
		nodes = append(nodes, WarehouseNode(w))
	}
	for _, c := range d.Customers {
		nodes = append(nodes, CustomerNode(c))
	}
	return nodes
}

// FindNode looks a node up by id across all three lists
func (d *ScenarioData) FindNode(id string) (Node, bool) {
	for _, n := range d.Nodes() {
		if n.ID() == id {
			return n, true
		}
	}
	return Node{}, false
}

// FindWarehouse returns the warehouse with id
func (d *ScenarioData) FindWarehouse(id string) (*Warehouse, bool) {
	for i := range d.Warehouses {
		if d.Warehouses[i].ID == id {
			return &d.Warehouses[i], true
		}
	}
	return nil, false
}

// WithoutCredentials returns a deep copy with every node's login pair cleared
func (c Company) WithoutCredentials() Company {
	out := c.Clone()
	out.Data.clearCredentials()
	out.BaseData.clearCredentials()
	return out
}

func (d *ScenarioData) clearCredentials() {
	for i := range d.Suppliers {
		d.Suppliers[i].Credentials = Credentials{}
	}
	for i := range d.Warehouses {
		d.Warehouses[i].Credentials = Credentials{}
	}
	for i := range d.Customers {
		d.Customers[i].Credentials = Credentials{}
	}
}
