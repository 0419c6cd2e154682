package analytics

import (
	"math"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
)

const (
	baseDockToStockHours   = 6.0
	inboundDelayFactor     = 1.5
	dispatchStrainHours    = 8.0
	safetyStockDays        = 3.0
	coveragePenaltyPerDay  = 5.0
	fullCoverageDays       = 10.0
	baseOrderCycleHours    = 20.0
	dockToStockTargetHours = 8.0
	otifCeiling            = 99.5
	otifFloor              = 70.0
	accuracyCeiling        = 99.5
	accuracyFloor          = 90.0
	maxCountedDelayHours   = 24.0
	delayedSupplierHours   = 1.0
)

// RecalculateAllMetrics derives every computed field of a network snapshot
// from its raw inputs. The argument is left untouched; targets are carried
// over as-is. Running it on its own output changes nothing.
func RecalculateAllMetrics(data domain.ScenarioData) domain.ScenarioData {
	out := data.Clone()

	// 1. Supplier resilience comes first; warehouses read the fresh scores.
	for i := range out.Suppliers {
		out.Suppliers[i].ResilienceScore = supplierResilience(out.Suppliers[i])
	}

	suppliers := make(map[string]*domain.Supplier, len(out.Suppliers))
	for i := range out.Suppliers {
		suppliers[out.Suppliers[i].ID] = &out.Suppliers[i]
	}
	customers := make(map[string]*domain.Customer, len(out.Customers))
	for i := range out.Customers {
		customers[out.Customers[i].ID] = &out.Customers[i]
	}

	// 2. Warehouse metrics
	for i := range out.Warehouses {
		recalculateWarehouse(&out.Warehouses[i], out.Connections, suppliers, customers)
	}

	warehouses := make(map[string]bool, len(out.Warehouses))
	for _, w := range out.Warehouses {
		warehouses[w.ID] = true
	}

	// 3. Connection status and utilization
	for i := range out.Connections {
		recalculateConnection(&out.Connections[i], suppliers, customers, warehouses)
	}

	// 4. Network rollup
	out.NetworkMetrics = CalculateNetworkMetrics(out)

	// 5. Overall resilience
	out.ResilienceScore = networkResilience(out)

	return out
}

func supplierResilience(s domain.Supplier) float64 {
	delayPenalty := math.Min(s.AverageDelayHours, maxCountedDelayHours) * 3
	return clamp(100-delayPenalty, 0, 100)
}

func recalculateWarehouse(
	wh *domain.Warehouse,
	connections []domain.Connection,
	suppliers map[string]*domain.Supplier,
	customers map[string]*domain.Customer,
) {
	// 1. Inbound suppliers and outbound demand. Stale ids contribute nothing.
	var inbound []*domain.Supplier
	var dailyDemand float64
	for _, conn := range connections {
		if conn.To == wh.ID {
			if s, ok := suppliers[conn.From]; ok {
				inbound = append(inbound, s)
			}
		}
		if conn.From == wh.ID {
			if c, ok := customers[conn.To]; ok {
				dailyDemand += c.Demand
			}
		}
	}

	avgInboundDelay := 0.0
	supplierResilienceAvg := 100.0
	if len(inbound) > 0 {
		var delay, resilience float64
		for _, s := range inbound {
			delay += s.AverageDelayHours
			resilience += s.ResilienceScore
		}
		avgInboundDelay = delay / float64(len(inbound))
		supplierResilienceAvg = resilience / float64(len(inbound))
	}

	// 2. Dock-to-stock time = base handling + amplified inbound delay
	dockToStock := baseDockToStockHours + avgInboundDelay*inboundDelayFactor

	// 3. Dispatch delay from capacity strain
	capacityStrain := math.Max(0, dailyDemand/math.Max(wh.DispatchedLast24h, 1)-1)
	dispatchDelay := capacityStrain * dispatchStrainHours

	// 4. Inventory coverage, penalty and score. Coverage may be +Inf.
	coverageDays := math.Inf(1)
	if dailyDemand > 0 {
		coverageDays = wh.InventoryLevel / dailyDemand
	}
	inventoryPenalty := 0.0
	if coverageDays < safetyStockDays {
		inventoryPenalty = (safetyStockDays - coverageDays) * coveragePenaltyPerDay
	}
	inventoryScore := clamp(coverageDays/fullCoverageDays*100, 0, 100)

	// 5. Resilience blend
	wh.ResilienceScore = math.Round(inventoryScore*0.6 + supplierResilienceAvg*0.4)

	// 6. Service levels
	otif := otifCeiling -
		math.Max(0, dockToStock-dockToStockTargetHours)/2 -
		dispatchDelay/4 -
		inventoryPenalty
	accuracy := accuracyCeiling - inventoryPenalty/2 - wh.Efficiency.ErrorRate

	// 7. Cost with rework counted twice
	cost := wh.Metrics.CostPerOrder.Labor +
		wh.Metrics.CostPerOrder.Packaging +
		wh.Metrics.CostPerOrder.Shipping +
		wh.Efficiency.Rework*2

	// 8. Annual turnover
	turnover := 0.0
	if wh.InventoryLevel > 0 {
		turnover = dailyDemand * 365 / wh.InventoryLevel
	}

	// 9. Workforce against the picking speed target
	pickingTarget := float64(domain.DefaultPickingSpeedTarget)
	if wh.Metrics.PickingSpeed != nil {
		pickingTarget = wh.Metrics.PickingSpeed.Target
	} else {
		wh.Metrics.PickingSpeed = &domain.MetricDetail{Target: pickingTarget}
	}
	onTrack := 0.0
	if pickingTarget > 0 {
		onTrack = math.Round(math.Min(100, wh.Efficiency.PicksPerHour/pickingTarget*100))
	}

	wh.DispatchDelayHours = dispatchDelay
	wh.Workforce.OnTrack = finite(onTrack)
	wh.Metrics.DockToStockTime.Value = dockToStock
	wh.Metrics.OTIF.Value = math.Max(otifFloor, otif)
	wh.Metrics.OrderCycleTime.Value = baseOrderCycleHours + dockToStock + dispatchDelay
	wh.Metrics.OrderAccuracy.Value = math.Max(accuracyFloor, accuracy)
	wh.Metrics.CostPerOrder.Value = cost
	wh.Metrics.InventoryTurnover.Value = finite(turnover)
	wh.Metrics.PickingSpeed.Value = wh.Efficiency.PicksPerHour
}

func recalculateConnection(
	conn *domain.Connection,
	suppliers map[string]*domain.Supplier,
	customers map[string]*domain.Customer,
	warehouses map[string]bool,
) {
	known := func(id string) bool {
		_, isSupplier := suppliers[id]
		_, isCustomer := customers[id]
		return isSupplier || isCustomer || warehouses[id]
	}

	conn.Utilization = 0
	conn.Status = domain.ConnectionNormal

	// stale edges keep the defaults
	if !known(conn.From) || !known(conn.To) {
		return
	}

	supplier, fromSupplier := suppliers[conn.From]
	customer, toCustomer := customers[conn.To]

	throughput := 0.0
	switch {
	case fromSupplier && warehouses[conn.To]:
		throughput = supplier.SupplyCapacity
	case warehouses[conn.From] && toCustomer:
		throughput = customer.Demand
	}

	if conn.Capacity > 0 {
		conn.Utilization = finite(math.Min(1, throughput/conn.Capacity))
	}
	if fromSupplier && supplier.AverageDelayHours > delayedSupplierHours {
		conn.Status = domain.ConnectionDelayed
	}
}

func networkResilience(data domain.ScenarioData) float64 {
	avgWarehouse := 100.0
	if len(data.Warehouses) > 0 {
		var sum float64
		for _, w := range data.Warehouses {
			sum += w.ResilienceScore
		}
		avgWarehouse = sum / float64(len(data.Warehouses))
	}

	avgSupplier := 100.0
	if len(data.Suppliers) > 0 {
		var sum float64
		for _, s := range data.Suppliers {
			sum += s.ResilienceScore
		}
		avgSupplier = sum / float64(len(data.Suppliers))
	}

	return math.Round(avgWarehouse*0.7 + avgSupplier*0.3)
}

// finite coerces NaN and infinities to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
