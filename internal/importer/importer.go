package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// Defaults applied to blank or zero cells
const (
	defaultLaborCost        = 70
	defaultPackagingCost    = 20
	defaultShippingCost     = 50
	defaultDeliveryVariance = 1
	defaultTransitTimeHours = 24
	defaultCompanyName      = "Unnamed Company"
)

// Neutral values the derivation engine overwrites
const (
	placeholderResilience     = 100
	placeholderCostPerOrder   = 140
	placeholderTurnoverTarget = 9
	pendingOrderStatus        = "Pending"
)

// Map layout: one column per node kind, nodes spread down the column
const (
	supplierColumnX  = 10
	warehouseColumnX = 45
	customerColumnX  = 85
	mapTop           = 10.0
	mapHeight        = 80.0
)

var whitespace = regexp.MustCompile(`\s+`)

// Importer turns a workbook into a Company. Derived metrics are left at
// neutral placeholders; callers run the derivation engine on the result.
type Importer struct {
	validate *validator.Validate
	newID    func() string
}

func New() *Importer {
	return &Importer{
		validate: validator.New(),
		newID:    uuid.NewString,
	}
}

// ParseFile opens path and parses it
func (im *Importer) ParseFile(path string) (domain.Company, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Company{}, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	defer f.Close()
	return im.parse(f)
}

// Parse reads a workbook from r
func (im *Importer) Parse(r io.Reader) (domain.Company, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Company{}, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer f.Close()
	return im.parse(f)
}

func (im *Importer) parse(f *excelize.File) (domain.Company, error) {
	info, err := readSheet(f, SheetCompanyInfo)
	if err != nil {
		return domain.Company{}, err
	}
	var targets []row
	if hasSheet(f, SheetNetworkTargets) {
		if targets, err = readSheet(f, SheetNetworkTargets); err != nil {
			return domain.Company{}, err
		}
	}
	supplierRows, err := readSheet(f, SheetSuppliers)
	if err != nil {
		return domain.Company{}, err
	}
	warehouseRows, err := readSheet(f, SheetWarehouses)
	if err != nil {
		return domain.Company{}, err
	}
	customerRows, err := readSheet(f, SheetCustomers)
	if err != nil {
		return domain.Company{}, err
	}
	connectionRows, err := readSheet(f, SheetConnections)
	if err != nil {
		return domain.Company{}, err
	}

	name := infoValue(info, "Company Name")
	if name == "" {
		name = defaultCompanyName
	}

	data := domain.ScenarioData{
		NetworkName:     name + " Network",
		NetworkMetrics:  networkPlaceholders(targets),
		ResilienceScore: placeholderResilience,
	}

	for i, r := range supplierRows {
		s := parseSupplier(r, i, len(supplierRows))
		if err := im.validate.Struct(s); err != nil {
			return domain.Company{}, fmt.Errorf("%s row %d: %w", SheetSuppliers, i+2, err)
		}
		data.Suppliers = append(data.Suppliers, s)
	}
	for i, r := range warehouseRows {
		w := parseWarehouse(r, i, len(warehouseRows))
		if err := im.validate.Struct(w); err != nil {
			return domain.Company{}, fmt.Errorf("%s row %d: %w", SheetWarehouses, i+2, err)
		}
		data.Warehouses = append(data.Warehouses, w)
	}
	for i, r := range customerRows {
		c := parseCustomer(r, i, len(customerRows))
		if err := im.validate.Struct(c); err != nil {
			return domain.Company{}, fmt.Errorf("%s row %d: %w", SheetCustomers, i+2, err)
		}
		data.Customers = append(data.Customers, c)
	}
	for i, r := range connectionRows {
		c := domain.Connection{
			From:        r.str("fromid"),
			To:          r.str("toid"),
			Status:      domain.ConnectionNormal,
			TransitTime: r.num("transittime", defaultTransitTimeHours),
			Capacity:    r.num("capacity", 0),
		}
		if err := im.validate.Struct(c); err != nil {
			return domain.Company{}, fmt.Errorf("%s row %d: %w", SheetConnections, i+2, err)
		}
		data.Connections = append(data.Connections, c)
	}

	return domain.Company{
		ID:          slug(name) + "-" + im.newID(),
		Name:        name,
		Description: infoValue(info, "Description"),
		Scenario:    domain.ScenarioNormal,
		Data:        data,
		BaseData:    data.Clone(),
	}, nil
}

// infoValue finds the Value cell of the Company Info row whose Key matches
func infoValue(rows []row, key string) string {
	for _, r := range rows {
		if strings.EqualFold(r.str("key"), key) {
			return r.str("value")
		}
	}
	return ""
}

// spread places the i-th of n nodes evenly down the map
func spread(i, n int) domain.Location {
	return domain.Location{Y: mapTop + mapHeight*float64(i+1)/float64(n+1)}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func parseSupplier(r row, i, n int) domain.Supplier {
	loc := spread(i, n)
	loc.X = supplierColumnX
	return domain.Supplier{
		ID:                   orDefault(r.str("id"), "sup-"+strconv.Itoa(i)),
		Name:                 r.str("name"),
		Location:             loc,
		SupplyCapacity:       r.num("supplycapacity", 0),
		MaterialsSupplied:    r.list("materialssupplied"),
		AverageDelayHours:    r.num("averagedelayhours", 0),
		DeliveryTimeVariance: r.num("deliverytimevariance", defaultDeliveryVariance),
		ResilienceScore:      placeholderResilience,
		Credentials:          credentials(r),
	}
}

func parseWarehouse(r row, i, n int) domain.Warehouse {
	loc := spread(i, n)
	loc.X = warehouseColumnX

	storage := []domain.StorageItem{}
	if raw := r.str("storage"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &storage); err != nil {
			log.Warn().Err(err).Str("warehouse", r.str("name")).Msg("could not parse storage JSON, leaving storage empty")
			storage = []domain.StorageItem{}
		}
	}

	return domain.Warehouse{
		ID:                orDefault(r.str("id"), "wh-"+strconv.Itoa(i)),
		Name:              r.str("name"),
		Location:          loc,
		Metrics:           warehousePlaceholders(r),
		InventoryLevel:    r.num("inventorylevel", 0),
		Storage:           storage,
		DispatchedLast24h: r.num("dispatchedlast24h", 0),
		ResilienceScore:   placeholderResilience,
		Workforce:         domain.Workforce{Active: r.num("workforceactive", 0)},
		Efficiency: domain.Efficiency{
			PicksPerHour: r.num("efficiencypicksperhour", 0),
			ErrorRate:    r.num("efficiencyerrorrate", 0),
			Rework:       r.num("efficiencyrework", 0),
			Overtime:     r.num("efficiencyovertime", 0),
		},
		Credentials: credentials(r),
	}
}

func parseCustomer(r row, i, n int) domain.Customer {
	loc := spread(i, n)
	loc.X = customerColumnX
	return domain.Customer{
		ID:           orDefault(r.str("id"), "cust-"+strconv.Itoa(i)),
		Name:         r.str("name"),
		Location:     loc,
		Demand:       r.num("demand", 0),
		Requirements: r.list("requirements"),
		CurrentOrder: domain.Order{ID: "ord-" + strconv.Itoa(i), Status: pendingOrderStatus},
		Credentials:  credentials(r),
	}
}

func credentials(r row) domain.Credentials {
	return domain.Credentials{Username: r.str("username"), Password: r.str("password")}
}

func warehousePlaceholders(r row) domain.Metrics {
	detail := func(v float64) *domain.MetricDetail { return &domain.MetricDetail{Value: v, Target: v} }
	return domain.Metrics{
		OTIF:            domain.MetricDetail{Value: 95, Target: 95},
		OrderCycleTime:  domain.MetricDetail{Value: 24, Target: 24},
		OrderAccuracy:   domain.MetricDetail{Value: 99, Target: 99},
		DockToStockTime: domain.MetricDetail{Value: 8, Target: 8},
		CostPerOrder: domain.CostMetric{
			MetricDetail: domain.MetricDetail{Value: placeholderCostPerOrder, Target: placeholderCostPerOrder},
			Labor:        r.num("costlabor", defaultLaborCost),
			Packaging:    r.num("costpackaging", defaultPackagingCost),
			Shipping:     r.num("costshipping", defaultShippingCost),
		},
		InventoryTurnover:  domain.InventoryMetric{MetricDetail: domain.MetricDetail{Target: placeholderTurnoverTarget}},
		PickingSpeed:       detail(domain.DefaultPickingSpeedTarget),
		PackingEfficiency:  detail(domain.DefaultPackingEfficiencyTarget),
		DispatchTimeliness: detail(domain.DefaultDispatchTimelinessTarget),
	}
}

// networkPlaceholders starts from the empty-network baseline and overrides
// targets from the Network Targets sheet
func networkPlaceholders(targets []row) domain.Metrics {
	m := domain.EmptyNetworkMetrics()
	lookup := map[domain.MetricKey]string{
		domain.MetricOTIF:               "otif",
		domain.MetricOrderCycleTime:     "order cycle time",
		domain.MetricOrderAccuracy:      "order accuracy",
		domain.MetricDockToStockTime:    "dock to stock time",
		domain.MetricCostPerOrder:       "cost per order",
		domain.MetricInventoryTurnover:  "inventory turnover",
		domain.MetricPickingSpeed:       "picking speed",
		domain.MetricPackingEfficiency:  "packing efficiency",
		domain.MetricDispatchTimeliness: "dispatch timeliness",
	}
	for key, label := range lookup {
		if target, ok := findTarget(targets, label); ok {
			m.SetTarget(key, target)
		}
	}
	return m
}

// findTarget matches the first row whose Metric cell contains label
func findTarget(rows []row, label string) (float64, bool) {
	for _, r := range rows {
		metric := strings.ToLower(r.str("metric"))
		if metric == "" || !strings.Contains(metric, label) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(r.str("target")), 64)
		return v, err == nil
	}
	return 0, false
}

func slug(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
