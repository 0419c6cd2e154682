// backend-go/internal/domain/models.go
package domain

// Scenario is a display hint describing how a company network is expected to behave
type Scenario string

const (
	ScenarioNormal  Scenario = "normal"
	ScenarioProblem Scenario = "problem"
)

// ConnectionStatus is derived from the delay of the supplier feeding a connection
type ConnectionStatus string

const (
	ConnectionNormal  ConnectionStatus = "normal"
	ConnectionDelayed ConnectionStatus = "delayed"
)

// Location is a display-only coordinate on the network map
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StorageItem is one itemized line of warehouse stock
type StorageItem struct {
	Item     string  `json:"item" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
}

// Credentials are the optional login pair carried by every node type
type Credentials struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// Supplier feeds raw material into warehouses
type Supplier struct {
	ID                   string   `json:"id" validate:"required"`
	Name                 string   `json:"name" validate:"required"`
	Location             Location `json:"location"`
	SupplyCapacity       float64  `json:"supplyCapacity" validate:"gte=0"` // units per day
	MaterialsSupplied    []string `json:"materialsSupplied"`
	AverageDelayHours    float64  `json:"averageDelayHours" validate:"gte=0"`
	DeliveryTimeVariance float64  `json:"deliveryTimeVariance"` // days
	ResilienceScore      float64  `json:"resilienceScore"`
	Credentials
}

// Workforce holds the raw head count and the derived on-track percentage
type Workforce struct {
	Active  float64 `json:"active"`
	OnTrack float64 `json:"onTrack"`
}

// Efficiency holds raw warehouse floor performance inputs
type Efficiency struct {
	PicksPerHour float64 `json:"picksPerHour"`
	ErrorRate    float64 `json:"errorRate"` // percentage
	Rework       float64 `json:"rework"`    // percentage
	Overtime     float64 `json:"overtime"`  // percentage
}

// Warehouse stores stock and dispatches to customers
type Warehouse struct {
	ID                 string        `json:"id" validate:"required"`
	Name               string        `json:"name" validate:"required"`
	Location           Location      `json:"location"`
	Metrics            Metrics       `json:"metrics"`
	InventoryLevel     float64       `json:"inventoryLevel" validate:"gte=0"`
	Storage            []StorageItem `json:"storage" validate:"dive"`
	DispatchedLast24h  float64       `json:"dispatchedLast24h" validate:"gte=0"`
	DispatchDelayHours float64       `json:"dispatchDelayHours"`
	ResilienceScore    float64       `json:"resilienceScore"`
	Workforce          Workforce     `json:"workforce"`
	Efficiency         Efficiency    `json:"efficiency"`
	Credentials
}

// StorageTotal sums the itemized storage quantities
func (w *Warehouse) StorageTotal() float64 {
	var total float64
	for _, item := range w.Storage {
		total += item.Quantity
	}
	return total
}

// Order is the customer-visible order status, maintained independently of connection status
type Order struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Customer consumes goods dispatched from warehouses
type Customer struct {
	ID           string   `json:"id" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	Location     Location `json:"location"`
	Demand       float64  `json:"demand" validate:"gte=0"` // units per day
	Requirements []string `json:"requirements"`
	CurrentOrder Order    `json:"currentOrder"`
	Credentials
}

// Connection is a directed edge supplier->warehouse or warehouse->customer
type Connection struct {
	From        string           `json:"from" validate:"required"`
	To          string           `json:"to" validate:"required"`
	Status      ConnectionStatus `json:"status"`
	TransitTime float64          `json:"transitTime"` // hours
	Capacity    float64          `json:"capacity"`    // units per day
	Utilization float64          `json:"utilization"`
}

// Touches reports whether the connection starts or ends at the node
func (c Connection) Touches(nodeID string) bool {
	return c.From == nodeID || c.To == nodeID
}

// ScenarioData is a full network snapshot, the unit the derivation engine works on
type ScenarioData struct {
	NetworkName     string       `json:"networkName"`
	NetworkMetrics  Metrics      `json:"networkMetrics"`
	Suppliers       []Supplier   `json:"suppliers"`
	Warehouses      []Warehouse  `json:"warehouses"`
	Customers       []Customer   `json:"customers"`
	Connections     []Connection `json:"connections"`
	ResilienceScore float64      `json:"resilienceScore"`
}

// Company owns a live snapshot and the saved baseline it can be reset to
type Company struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Scenario    Scenario     `json:"scenario"`
	Data        ScenarioData `json:"data"`
	BaseData    ScenarioData `json:"baseData"`
}
