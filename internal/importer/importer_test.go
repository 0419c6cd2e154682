package importer

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestImporter() *Importer {
	im := New()
	im.newID = func() string { return "fixed" }
	return im
}

func templateBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))
	return buf.Bytes()
}

func TestNormalizeHeader(t *testing.T) {
	for in, want := range map[string]string{
		"Supply Capacity":         "supplycapacity",
		"supply_capacity":         "supplycapacity",
		"supplyCapacity":          "supplycapacity",
		"Dispatched (last 24h)":   "dispatchedlast24h",
		"efficiency_picksPerHour": "efficiencypicksperhour",
		"":                        "",
	} {
		assert.Equal(t, want, normalizeHeader(in), in)
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	company, err := newTestImporter().Parse(bytes.NewReader(templateBytes(t)))
	require.NoError(t, err)

	assert.Equal(t, "my-awesome-company-fixed", company.ID)
	assert.Equal(t, "My Awesome Company", company.Name)
	assert.Equal(t, "A description of the supply chain network.", company.Description)
	assert.Equal(t, domain.ScenarioNormal, company.Scenario)
	assert.Equal(t, "My Awesome Company Network", company.Data.NetworkName)
	assert.Equal(t, company.Data, company.BaseData)

	require.Len(t, company.Data.Suppliers, 1)
	sup := company.Data.Suppliers[0]
	assert.Equal(t, "sup-1", sup.ID)
	assert.Equal(t, 10000.0, sup.SupplyCapacity)
	assert.Equal(t, []string{"parts-A", "parts-B"}, sup.MaterialsSupplied)
	assert.Equal(t, 0.5, sup.AverageDelayHours)
	assert.Equal(t, 1.2, sup.DeliveryTimeVariance)
	assert.Equal(t, "supplier_user", sup.Username)
	assert.Equal(t, 10.0, sup.Location.X)

	require.Len(t, company.Data.Warehouses, 1)
	wh := company.Data.Warehouses[0]
	assert.Equal(t, 25000.0, wh.InventoryLevel)
	assert.Equal(t, []domain.StorageItem{{Item: "parts-A", Quantity: 15000}, {Item: "parts-B", Quantity: 10000}}, wh.Storage)
	assert.Equal(t, 100.0, wh.Workforce.Active)
	assert.Equal(t, 35.0, wh.Efficiency.PicksPerHour)
	assert.Equal(t, 70.0, wh.Metrics.CostPerOrder.Labor)
	assert.Equal(t, 140.0, wh.Metrics.CostPerOrder.Value)
	require.NotNil(t, wh.Metrics.PickingSpeed)

	require.Len(t, company.Data.Customers, 1)
	assert.Equal(t, domain.Order{ID: "ord-0", Status: "Pending"}, company.Data.Customers[0].CurrentOrder)

	require.Len(t, company.Data.Connections, 2)
	assert.Equal(t, domain.Connection{From: "wh-1", To: "cust-1", Status: domain.ConnectionNormal, TransitTime: 12, Capacity: 6000}, company.Data.Connections[1])

	assert.Equal(t, domain.EmptyNetworkMetrics(), company.Data.NetworkMetrics)
}

// newWorkbook builds a workbook with every required sheet; sheets maps a
// sheet name to header + rows
func newWorkbook(t *testing.T, sheets map[string][][]any) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	for _, name := range []string{SheetCompanyInfo, SheetNetworkTargets, SheetSuppliers, SheetWarehouses, SheetCustomers, SheetConnections} {
		lines, ok := sheets[name]
		if !ok {
			continue
		}
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, line := range lines {
			require.NoError(t, writeRow(f, name, i+1, line))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))
	return f
}

func requiredSheets() map[string][][]any {
	return map[string][][]any{
		SheetCompanyInfo: {{"Key", "Value"}, {"Company Name", "Acme  Freight"}},
		SheetSuppliers:   {{"ID", "Name"}},
		SheetWarehouses:  {{"ID", "Name"}},
		SheetCustomers:   {{"ID", "Name"}},
		SheetConnections: {{"From ID", "To ID"}},
	}
}

func TestParseDefaultsAndHeaderVariants(t *testing.T) {
	sheets := requiredSheets()
	sheets[SheetNetworkTargets] = [][]any{
		{"Metric", "Target"},
		{"OTIF (%)", 90},
		{"Picking Speed (u/hr)", "n/a"},
		{"Cost per order", 120},
	}
	sheets[SheetSuppliers] = [][]any{
		{"Supply Capacity", "Name", "Delivery Time Variance", "Materials Supplied"},
		{5000, "No Id Supplier", 0, " a ,, b "},
	}
	sheets[SheetWarehouses] = [][]any{
		{"id", "name", "storage", "Cost Labor", "cost_shipping"},
		{"wh-9", "Broken Storage", "{not json", 0, 65},
	}
	sheets[SheetCustomers] = [][]any{
		{"id", "name", "demand", "requirements"},
		{"", "Anonymous", "1,250", ""},
		{},
	}
	sheets[SheetConnections] = [][]any{
		{"From ID", "to_id", "Transit Time"},
		{"sup-0", "wh-9", ""},
	}

	company, err := newTestImporter().parse(newWorkbook(t, sheets))
	require.NoError(t, err)

	assert.Equal(t, "acme-freight-fixed", company.ID)
	assert.Empty(t, company.Description)

	sup := company.Data.Suppliers[0]
	assert.Equal(t, "sup-0", sup.ID)
	assert.Equal(t, 5000.0, sup.SupplyCapacity)
	assert.Equal(t, 1.0, sup.DeliveryTimeVariance)
	assert.Equal(t, []string{"a", "b"}, sup.MaterialsSupplied)

	wh := company.Data.Warehouses[0]
	assert.Empty(t, wh.Storage)
	assert.NotNil(t, wh.Storage)
	assert.Equal(t, 70.0, wh.Metrics.CostPerOrder.Labor)
	assert.Equal(t, 20.0, wh.Metrics.CostPerOrder.Packaging)
	assert.Equal(t, 65.0, wh.Metrics.CostPerOrder.Shipping)

	require.Len(t, company.Data.Customers, 1)
	cust := company.Data.Customers[0]
	assert.Equal(t, "cust-0", cust.ID)
	assert.Equal(t, 1250.0, cust.Demand)
	assert.Equal(t, []string{}, cust.Requirements)

	assert.Equal(t, 24.0, company.Data.Connections[0].TransitTime)

	nm := company.Data.NetworkMetrics
	assert.Equal(t, 90.0, nm.OTIF.Target)
	assert.Equal(t, 120.0, nm.CostPerOrder.Target)
	assert.Equal(t, float64(domain.DefaultPickingSpeedTarget), nm.PickingSpeed.Target)
	assert.Equal(t, 24.0, nm.OrderCycleTime.Target)
}

func TestParseUnnamedCompany(t *testing.T) {
	sheets := requiredSheets()
	sheets[SheetCompanyInfo] = [][]any{{"Key", "Value"}}

	company, err := newTestImporter().parse(newWorkbook(t, sheets))
	require.NoError(t, err)
	assert.Equal(t, "Unnamed Company", company.Name)
	assert.Equal(t, "unnamed-company-fixed", company.ID)
}

func TestParseMissingSheet(t *testing.T) {
	sheets := requiredSheets()
	delete(sheets, SheetCustomers)

	_, err := newTestImporter().parse(newWorkbook(t, sheets))
	assert.ErrorIs(t, err, ErrMissingSheet)
	assert.ErrorContains(t, err, SheetCustomers)
}

func TestParseRejectsInvalidRows(t *testing.T) {
	sheets := requiredSheets()
	sheets[SheetSuppliers] = [][]any{{"id", "name"}, {"sup-1", ""}}

	_, err := newTestImporter().parse(newWorkbook(t, sheets))
	assert.ErrorContains(t, err, "Suppliers row 2")

	sheets = requiredSheets()
	sheets[SheetConnections] = [][]any{{"from_id", "to_id", "capacity"}, {"sup-1", "", 10}}
	_, err = newTestImporter().parse(newWorkbook(t, sheets))
	assert.ErrorContains(t, err, "Connections row 2")
}

func TestParseFile(t *testing.T) {
	f, err := Template()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), TemplateFileName)
	require.NoError(t, f.SaveAs(path))

	company, err := newTestImporter().ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "My Awesome Company", company.Name)

	_, err = newTestImporter().ParseFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	_, err := New().Parse(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}

func TestSpreadLayout(t *testing.T) {
	assert.Equal(t, 50.0, spread(0, 1).Y)
	assert.InDelta(t, 36.67, spread(0, 2).Y, 0.01)
	assert.InDelta(t, 63.33, spread(1, 2).Y, 0.01)
}
