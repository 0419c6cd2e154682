package domain

// Seed company ids
const (
	SeedInnovateID = "innovate-inc"
	SeedLegacyID   = "legacy-logistics"
)

func innovateData() ScenarioData {
	return ScenarioData{
		NetworkName: "Innovate Inc. Network",
		NetworkMetrics: Metrics{
			OTIF:               MetricDetail{Value: 98.5, Target: 95},
			OrderCycleTime:     MetricDetail{Value: 22, Target: 24},
			OrderAccuracy:      MetricDetail{Value: 99.2, Target: 99},
			DockToStockTime:    MetricDetail{Value: 6, Target: 8},
			CostPerOrder:       CostMetric{MetricDetail: MetricDetail{Value: 135, Target: 140}, Labor: 65, Packaging: 20, Shipping: 50},
			InventoryTurnover:  InventoryMetric{MetricDetail: MetricDetail{Value: 8.5, Target: 9}, StockoutRate: 1.5, OverstockRate: 4, ShrinkageRate: 0.8},
			PickingSpeed:       &MetricDetail{Value: 36, Target: 35},
			PackingEfficiency:  &MetricDetail{Value: 98, Target: 97},
			DispatchTimeliness: &MetricDetail{Value: 96, Target: 95},
		},
		ResilienceScore: 92,
		Suppliers: []Supplier{
			{
				ID:                   "sup-detroit",
				Name:                 "Detroit Parts Co.",
				Location:             Location{X: 10, Y: 25},
				SupplyCapacity:       5000,
				MaterialsSupplied:    []string{"Engine Blocks", "Chassis"},
				AverageDelayHours:    0.5,
				DeliveryTimeVariance: 0.5,
				ResilienceScore:      95,
				Credentials:          Credentials{Username: "detroit", Password: "detroit123"},
			},
			{
				ID:                   "sup-sf",
				Name:                 "SF Electronics",
				Location:             Location{X: 10, Y: 75},
				SupplyCapacity:       8000,
				MaterialsSupplied:    []string{"Microchips", "Wiring Harness"},
				AverageDelayHours:    0.2,
				DeliveryTimeVariance: 0.2,
				ResilienceScore:      98,
			},
		},
		Warehouses: []Warehouse{
			{
				ID:             "wh-chicago",
				Name:           "Chicago, IL",
				Location:       Location{X: 40, Y: 25},
				InventoryLevel: 15000,
				Credentials:    Credentials{Username: "chicago", Password: "chicago123"},
				Metrics: Metrics{
					OTIF:               MetricDetail{Value: 98.8, Target: 95},
					OrderCycleTime:     MetricDetail{Value: 21, Target: 24},
					OrderAccuracy:      MetricDetail{Value: 99.5, Target: 99},
					DockToStockTime:    MetricDetail{Value: 5.5, Target: 8},
					CostPerOrder:       CostMetric{MetricDetail: MetricDetail{Value: 130, Target: 140}, Labor: 60, Packaging: 20, Shipping: 50},
					InventoryTurnover:  InventoryMetric{MetricDetail: MetricDetail{Value: 8, Target: 9}, StockoutRate: 2, OverstockRate: 5, ShrinkageRate: 1},
					PickingSpeed:       &MetricDetail{Value: 37, Target: 35},
					PackingEfficiency:  &MetricDetail{Value: 98, Target: 97},
					DispatchTimeliness: &MetricDetail{Value: 97, Target: 95},
				},
				Storage:            []StorageItem{{Item: "Engine Blocks", Quantity: 7000}, {Item: "Chassis", Quantity: 8000}},
				DispatchedLast24h:  4800,
				DispatchDelayHours: 0,
				ResilienceScore:    90,
				Workforce:          Workforce{Active: 124, OnTrack: 91},
				Efficiency:         Efficiency{PicksPerHour: 41, ErrorRate: 1.5, Rework: 6.5, Overtime: 4},
			},
		},
		Customers: []Customer{
			{
				ID:           "cust-nyc",
				Name:         "NYC Retail",
				Location:     Location{X: 85, Y: 25},
				Demand:       4500,
				Requirements: []string{"Daily Restock"},
				CurrentOrder: Order{ID: "ORD-NYC-001", Status: "In Transit"},
				Credentials:  Credentials{Username: "nyc", Password: "nyc123"},
			},
			{
				ID:           "cust-dallas",
				Name:         "Dallas Hub",
				Location:     Location{X: 85, Y: 75},
				Demand:       7000,
				Requirements: []string{"Just-in-Time"},
				CurrentOrder: Order{ID: "ORD-DAL-001", Status: "Delivered"},
			},
		},
		// sup-sf -> wh-la has no warehouse on purpose: stale edges must survive recalculation
		Connections: []Connection{
			{From: "sup-detroit", To: "wh-chicago", Status: ConnectionNormal, TransitTime: 12, Capacity: 6000},
			{From: "sup-sf", To: "wh-la", Status: ConnectionNormal, TransitTime: 18, Capacity: 9000},
			{From: "wh-chicago", To: "cust-nyc", Status: ConnectionNormal, TransitTime: 24, Capacity: 5000},
		},
	}
}

func legacyData() ScenarioData {
	return ScenarioData{
		NetworkName: "Legacy Logistics Network",
		NetworkMetrics: Metrics{
			OTIF:               MetricDetail{Value: 85.2, Target: 95},
			OrderCycleTime:     MetricDetail{Value: 38, Target: 24},
			OrderAccuracy:      MetricDetail{Value: 99.1, Target: 99},
			DockToStockTime:    MetricDetail{Value: 18, Target: 8},
			CostPerOrder:       CostMetric{MetricDetail: MetricDetail{Value: 180, Target: 140}, Labor: 90, Packaging: 30, Shipping: 60},
			InventoryTurnover:  InventoryMetric{MetricDetail: MetricDetail{Value: 4, Target: 9}, StockoutRate: 15, OverstockRate: 10, ShrinkageRate: 3},
			PickingSpeed:       &MetricDetail{Value: 28, Target: 35},
			PackingEfficiency:  &MetricDetail{Value: 94, Target: 97},
			DispatchTimeliness: &MetricDetail{Value: 88, Target: 95},
		},
		ResilienceScore: 45,
		Suppliers: []Supplier{
			{
				ID:                   "sup-legacy-a",
				Name:                 "Global Parts Corp",
				Location:             Location{X: 10, Y: 50},
				SupplyCapacity:       6000,
				MaterialsSupplied:    []string{"Industrial Gears", "Bearings"},
				AverageDelayHours:    12,
				DeliveryTimeVariance: 4.5,
				ResilienceScore:      30,
			},
		},
		Warehouses: []Warehouse{
			{
				ID:             "wh-newark",
				Name:           "Newark, NJ",
				Location:       Location{X: 40, Y: 50},
				InventoryLevel: 28000,
				Metrics: Metrics{
					OTIF:               MetricDetail{Value: 75.6, Target: 95},
					OrderCycleTime:     MetricDetail{Value: 45, Target: 24},
					OrderAccuracy:      MetricDetail{Value: 99.4, Target: 99},
					DockToStockTime:    MetricDetail{Value: 28, Target: 8},
					CostPerOrder:       CostMetric{MetricDetail: MetricDetail{Value: 180, Target: 140}, Labor: 90, Packaging: 30, Shipping: 60},
					InventoryTurnover:  InventoryMetric{MetricDetail: MetricDetail{Value: 4, Target: 9}, StockoutRate: 15, OverstockRate: 10, ShrinkageRate: 3},
					PickingSpeed:       &MetricDetail{Value: 28, Target: 35},
					PackingEfficiency:  &MetricDetail{Value: 94, Target: 97},
					DispatchTimeliness: &MetricDetail{Value: 88, Target: 95},
				},
				Storage:            []StorageItem{{Item: "Industrial Gears", Quantity: 15000}, {Item: "Bearings", Quantity: 13000}},
				DispatchedLast24h:  5300,
				DispatchDelayHours: 8,
				ResilienceScore:    60,
				Workforce:          Workforce{Active: 105, OnTrack: 78},
				Efficiency:         Efficiency{PicksPerHour: 35, ErrorRate: 3.2, Rework: 9.1, Overtime: 12},
			},
		},
		Customers: []Customer{
			{
				ID:           "cust-east-coast",
				Name:         "East Coast Distribution",
				Location:     Location{X: 85, Y: 50},
				Demand:       5500,
				Requirements: []string{"Bulk Shipments", "Quality Inspection"},
				CurrentOrder: Order{ID: "ORD-EC-001", Status: "Delayed"},
			},
		},
		Connections: []Connection{
			{From: "sup-legacy-a", To: "wh-newark", Status: ConnectionDelayed, TransitTime: 32, Capacity: 6000},
			{From: "wh-newark", To: "cust-east-coast", Status: ConnectionNormal, TransitTime: 16, Capacity: 5500},
		},
	}
}

// SeedCompanies returns the demo companies with raw (not yet recalculated)
// data and baseData equal to a deep copy of data.
func SeedCompanies() []Company {
	innovate := innovateData()
	legacy := legacyData()

	return []Company{
		{
			ID:          SeedInnovateID,
			Name:        "Innovate Inc.",
			Description: "A modern, high-efficiency logistics network operating at peak performance.",
			Scenario:    ScenarioNormal,
			Data:        innovate.Clone(),
			BaseData:    innovate.Clone(),
		},
		{
			ID:          SeedLegacyID,
			Name:        "Legacy Logistics",
			Description: "An older network experiencing significant inbound delays affecting overall performance.",
			Scenario:    ScenarioProblem,
			Data:        legacy.Clone(),
			BaseData:    legacy.Clone(),
		},
	}
}
