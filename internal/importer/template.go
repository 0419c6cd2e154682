package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// TemplateFileName is the suggested download name for the template
const TemplateFileName = "SupplyChainTemplate.xlsx"

type sheetSpec struct {
	name    string
	headers []string
	rows    [][]any
}

var templateSheets = []sheetSpec{
	{
		name:    SheetCompanyInfo,
		headers: []string{"Key", "Value"},
		rows: [][]any{
			{"Company Name", "My Awesome Company"},
			{"Description", "A description of the supply chain network."},
		},
	},
	{
		name:    SheetNetworkTargets,
		headers: []string{"Metric", "Target"},
		rows: [][]any{
			{"OTIF (%)", 95},
			{"Order Cycle Time (hrs)", 24},
			{"Order Accuracy (%)", 99},
			{"Dock to Stock Time (hrs)", 8},
			{"Cost per Order (₹)", 150},
			{"Inventory Turnover (x)", 10},
			{"Picking Speed (u/hr)", 35},
			{"Packing Efficiency (%)", 97},
			{"Dispatch Timeliness (%)", 95},
		},
	},
	{
		name: SheetSuppliers,
		headers: []string{
			"id", "name", "username", "password", "supplyCapacity",
			"materialsSupplied", "averageDelayHours", "deliveryTimeVariance",
		},
		rows: [][]any{
			{"sup-1", "Main Supplier", "supplier_user", "password123", 10000, "parts-A, parts-B", 0.5, 1.2},
		},
	},
	{
		name: SheetWarehouses,
		headers: []string{
			"id", "name", "username", "password", "inventoryLevel", "storage",
			"dispatchedLast24h", "workforce_active", "efficiency_picksPerHour",
			"efficiency_errorRate", "efficiency_rework", "efficiency_overtime",
			"cost_labor", "cost_packaging", "cost_shipping",
		},
		rows: [][]any{
			{
				"wh-1", "Central Warehouse", "warehouse_user", "password123", 25000,
				`[{"item":"parts-A","quantity":15000},{"item":"parts-B","quantity":10000}]`,
				5000, 100, 35, 2, 5, 3, 70, 20, 50,
			},
		},
	},
	{
		name:    SheetCustomers,
		headers: []string{"id", "name", "username", "password", "demand", "requirements"},
		rows: [][]any{
			{"cust-1", "Primary Customer", "customer_user", "password123", 4500, "parts-A, parts-B"},
		},
	},
	{
		name:    SheetConnections,
		headers: []string{"from_id", "to_id", "transitTime", "capacity"},
		rows: [][]any{
			{"sup-1", "wh-1", 24, 12000},
			{"wh-1", "cust-1", 12, 6000},
		},
	},
}

// Template builds the example workbook users fill in for an import
func Template() (*excelize.File, error) {
	f := excelize.NewFile()

	for i, spec := range templateSheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), spec.name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(spec.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", spec.name, err)
		}

		if err := writeRow(f, spec.name, 1, toAny(spec.headers)); err != nil {
			return nil, err
		}
		for j, r := range spec.rows {
			if err := writeRow(f, spec.name, j+2, r); err != nil {
				return nil, err
			}
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// WriteTemplate streams the template workbook to w
func WriteTemplate(w io.Writer) error {
	f, err := Template()
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, line int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", line, sheet, err)
	}
	return nil
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
