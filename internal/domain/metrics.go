package domain

import "strings"

// MetricDetail is a measured value and its user-set goal
type MetricDetail struct {
	Value  float64 `json:"value"`
	Target float64 `json:"target"`
}

// CostMetric breaks cost per order into its components
type CostMetric struct {
	MetricDetail
	Labor     float64 `json:"labor"`
	Packaging float64 `json:"packaging"`
	Shipping  float64 `json:"shipping"`
}

// InventoryMetric carries inventory turnover plus its loss rates
type InventoryMetric struct {
	MetricDetail
	StockoutRate  float64 `json:"stockoutRate"`
	OverstockRate float64 `json:"overstockRate"`
	ShrinkageRate float64 `json:"shrinkageRate"`
}

// Metrics is the KPI bundle tracked per warehouse and for the whole network.
// The last three metrics are optional in stored data.
type Metrics struct {
	OTIF               MetricDetail    `json:"otif"`
	OrderCycleTime     MetricDetail    `json:"orderCycleTime"`
	OrderAccuracy      MetricDetail    `json:"orderAccuracy"`
	DockToStockTime    MetricDetail    `json:"dockToStockTime"`
	CostPerOrder       CostMetric      `json:"costPerOrder"`
	InventoryTurnover  InventoryMetric `json:"inventoryTurnover"`
	PickingSpeed       *MetricDetail   `json:"pickingSpeed,omitempty"`
	PackingEfficiency  *MetricDetail   `json:"packingEfficiency,omitempty"`
	DispatchTimeliness *MetricDetail   `json:"dispatchTimeliness,omitempty"`
}

// MetricKey names one metric of a Metrics bundle
type MetricKey string

const (
	MetricOTIF               MetricKey = "otif"
	MetricOrderCycleTime     MetricKey = "orderCycleTime"
	MetricOrderAccuracy      MetricKey = "orderAccuracy"
	MetricDockToStockTime    MetricKey = "dockToStockTime"
	MetricCostPerOrder       MetricKey = "costPerOrder"
	MetricInventoryTurnover  MetricKey = "inventoryTurnover"
	MetricPickingSpeed       MetricKey = "pickingSpeed"
	MetricPackingEfficiency  MetricKey = "packingEfficiency"
	MetricDispatchTimeliness MetricKey = "dispatchTimeliness"
)

// Default targets for the optional metrics when they are missing
const (
	DefaultPickingSpeedTarget       = 35
	DefaultPackingEfficiencyTarget  = 97
	DefaultDispatchTimelinessTarget = 95
)

var metricKeys = map[string]MetricKey{
	"otif":               MetricOTIF,
	"ordercycletime":     MetricOrderCycleTime,
	"orderaccuracy":      MetricOrderAccuracy,
	"docktostocktime":    MetricDockToStockTime,
	"costperorder":       MetricCostPerOrder,
	"inventoryturnover":  MetricInventoryTurnover,
	"pickingspeed":       MetricPickingSpeed,
	"packingefficiency":  MetricPackingEfficiency,
	"dispatchtimeliness": MetricDispatchTimeliness,
}

// ParseMetricKey resolves a metric name case-insensitively, ignoring '_' and '-'.
func ParseMetricKey(name string) (MetricKey, bool) {
	normalized := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(name))
	key, ok := metricKeys[normalized]
	return key, ok
}

// Detail returns the value/target pair for key, or nil when the key is
// unknown or the optional metric is absent.
func (m *Metrics) Detail(key MetricKey) *MetricDetail {
	switch key {
	case MetricOTIF:
		return &m.OTIF
	case MetricOrderCycleTime:
		return &m.OrderCycleTime
	case MetricOrderAccuracy:
		return &m.OrderAccuracy
	case MetricDockToStockTime:
		return &m.DockToStockTime
	case MetricCostPerOrder:
		return &m.CostPerOrder.MetricDetail
	case MetricInventoryTurnover:
		return &m.InventoryTurnover.MetricDetail
	case MetricPickingSpeed:
		return m.PickingSpeed
	case MetricPackingEfficiency:
		return m.PackingEfficiency
	case MetricDispatchTimeliness:
		return m.DispatchTimeliness
	}
	return nil
}

// SetTarget overwrites the target of key and reports whether the metric exists
func (m *Metrics) SetTarget(key MetricKey, target float64) bool {
	detail := m.Detail(key)
	if detail == nil {
		return false
	}
	detail.Target = target
	return true
}

// EmptyNetworkMetrics is the baseline reported for a network without warehouses
func EmptyNetworkMetrics() Metrics {
	return Metrics{
		OTIF:               MetricDetail{Value: 100, Target: 95},
		OrderCycleTime:     MetricDetail{Value: 0, Target: 24},
		OrderAccuracy:      MetricDetail{Value: 100, Target: 99},
		DockToStockTime:    MetricDetail{Value: 0, Target: 8},
		CostPerOrder:       CostMetric{MetricDetail: MetricDetail{Value: 0, Target: 150}},
		InventoryTurnover:  InventoryMetric{MetricDetail: MetricDetail{Value: 0, Target: 10}},
		PickingSpeed:       &MetricDetail{Value: 0, Target: DefaultPickingSpeedTarget},
		PackingEfficiency:  &MetricDetail{Value: 100, Target: DefaultPackingEfficiencyTarget},
		DispatchTimeliness: &MetricDetail{Value: 100, Target: DefaultDispatchTimelinessTarget},
	}
}
