package analytics

import "github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"

// CalculateNetworkMetrics rolls per-warehouse metrics up to the network.
// OTIF and accuracy are weighted by dispatched volume, everything else is a
// plain mean. Targets come from the current network metrics.
func CalculateNetworkMetrics(data domain.ScenarioData) domain.Metrics {
	if len(data.Warehouses) == 0 {
		return domain.EmptyNetworkMetrics()
	}

	prev := data.NetworkMetrics
	whs := data.Warehouses

	mean := func(value func(w *domain.Warehouse) float64) float64 {
		var sum float64
		for i := range whs {
			sum += value(&whs[i])
		}
		return finite(sum / float64(len(whs)))
	}

	weighted := func(value func(w *domain.Warehouse) float64) float64 {
		var total, sum float64
		for i := range whs {
			total += whs[i].DispatchedLast24h
			sum += value(&whs[i]) * whs[i].DispatchedLast24h
		}
		if total == 0 {
			return mean(value)
		}
		return finite(sum / total)
	}

	optional := func(key domain.MetricKey) func(w *domain.Warehouse) float64 {
		return func(w *domain.Warehouse) float64 {
			if d := w.Metrics.Detail(key); d != nil {
				return d.Value
			}
			return 0
		}
	}

	return domain.Metrics{
		OTIF: domain.MetricDetail{
			Value:  weighted(func(w *domain.Warehouse) float64 { return w.Metrics.OTIF.Value }),
			Target: prev.OTIF.Target,
		},
		OrderCycleTime: domain.MetricDetail{
			Value:  mean(func(w *domain.Warehouse) float64 { return w.Metrics.OrderCycleTime.Value }),
			Target: prev.OrderCycleTime.Target,
		},
		OrderAccuracy: domain.MetricDetail{
			Value:  weighted(func(w *domain.Warehouse) float64 { return w.Metrics.OrderAccuracy.Value }),
			Target: prev.OrderAccuracy.Target,
		},
		DockToStockTime: domain.MetricDetail{
			Value:  mean(func(w *domain.Warehouse) float64 { return w.Metrics.DockToStockTime.Value }),
			Target: prev.DockToStockTime.Target,
		},
		CostPerOrder: domain.CostMetric{
			MetricDetail: domain.MetricDetail{
				Value:  mean(func(w *domain.Warehouse) float64 { return w.Metrics.CostPerOrder.Value }),
				Target: prev.CostPerOrder.Target,
			},
			Labor:     mean(func(w *domain.Warehouse) float64 { return w.Metrics.CostPerOrder.Labor }),
			Packaging: mean(func(w *domain.Warehouse) float64 { return w.Metrics.CostPerOrder.Packaging }),
			Shipping:  mean(func(w *domain.Warehouse) float64 { return w.Metrics.CostPerOrder.Shipping }),
		},
		InventoryTurnover: domain.InventoryMetric{
			MetricDetail: domain.MetricDetail{
				Value:  mean(func(w *domain.Warehouse) float64 { return w.Metrics.InventoryTurnover.Value }),
				Target: prev.InventoryTurnover.Target,
			},
			StockoutRate:  mean(func(w *domain.Warehouse) float64 { return w.Metrics.InventoryTurnover.StockoutRate }),
			OverstockRate: mean(func(w *domain.Warehouse) float64 { return w.Metrics.InventoryTurnover.OverstockRate }),
			ShrinkageRate: mean(func(w *domain.Warehouse) float64 { return w.Metrics.InventoryTurnover.ShrinkageRate }),
		},
		PickingSpeed: &domain.MetricDetail{
			Value:  mean(optional(domain.MetricPickingSpeed)),
			Target: targetOr(prev.PickingSpeed, domain.DefaultPickingSpeedTarget),
		},
		PackingEfficiency: &domain.MetricDetail{
			Value:  mean(optional(domain.MetricPackingEfficiency)),
			Target: targetOr(prev.PackingEfficiency, domain.DefaultPackingEfficiencyTarget),
		},
		DispatchTimeliness: &domain.MetricDetail{
			Value:  mean(optional(domain.MetricDispatchTimeliness)),
			Target: targetOr(prev.DispatchTimeliness, domain.DefaultDispatchTimelinessTarget),
		},
	}
}

func targetOr(d *domain.MetricDetail, fallback float64) float64 {
	if d == nil {
		return fallback
	}
	return d.Target
}
