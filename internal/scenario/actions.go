package scenario

import "github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"

// ActionType names a state transition
type ActionType string

const (
	ActionSetCompanies                ActionType = "SET_COMPANIES"
	ActionUpdateCompanyData           ActionType = "UPDATE_COMPANY_DATA"
	ActionAddNode                     ActionType = "ADD_NODE"
	ActionUpdateNode                  ActionType = "UPDATE_NODE"
	ActionDeleteNode                  ActionType = "DELETE_NODE"
	ActionUpdateConnection            ActionType = "UPDATE_CONNECTION"
	ActionApplyStressTest             ActionType = "APPLY_STRESS_TEST"
	ActionResetScenario               ActionType = "RESET_SCENARIO"
	ActionUpdateNetworkMetricTarget   ActionType = "UPDATE_NETWORK_METRIC_TARGET"
	ActionUpdateWarehouseMetricTarget ActionType = "UPDATE_WAREHOUSE_METRIC_TARGET"
	ActionAddCompany                  ActionType = "ADD_COMPANY"
	ActionDeleteCompany               ActionType = "DELETE_COMPANY"
)

// Action is any input to the reducer
type Action interface {
	Type() ActionType
}

// CompanyAction edits a single company. apply never recalculates; the
// reducer does that according to the action's policy.
type CompanyAction interface {
	Action
	TargetCompany() string
	apply(c domain.Company) (domain.Company, bool)
}

// StressTest is a transient perturbation of the baseline
type StressTest string

const (
	StressSupplierOutage StressTest = "SUPPLIER_OUTAGE"
	StressDemandSpike    StressTest = "DEMAND_SPIKE"
)

// SetCompanies replaces the whole list, used on initial load
type SetCompanies struct {
	Companies []domain.Company
}

// DataPatch is a partial ScenarioData. Nil fields are left untouched; an
// empty non-nil slice clears the list.
type DataPatch struct {
	NetworkName     *string             `json:"networkName,omitempty"`
	NetworkMetrics  *domain.Metrics     `json:"networkMetrics,omitempty"`
	Suppliers       []domain.Supplier   `json:"suppliers,omitempty"`
	Warehouses      []domain.Warehouse  `json:"warehouses,omitempty"`
	Customers       []domain.Customer   `json:"customers,omitempty"`
	Connections     []domain.Connection `json:"connections,omitempty"`
	ResilienceScore *float64            `json:"resilienceScore,omitempty"`
}

// UpdateCompanyData is a live-controls edit that leaves the baseline alone
type UpdateCompanyData struct {
	CompanyID string
	Patch     DataPatch
}

type AddNode struct {
	CompanyID string
	Node      domain.Node
}

type UpdateNode struct {
	CompanyID string
	Node      domain.Node
}

type DeleteNode struct {
	CompanyID string
	Kind      domain.NodeKind
	NodeID    string
}

// UpdateConnection replaces the connection with the same from/to pair
type UpdateConnection struct {
	CompanyID  string
	Connection domain.Connection
}

type ApplyStressTest struct {
	CompanyID string
	Test      StressTest
}

type ResetScenario struct {
	CompanyID string
}

type UpdateNetworkMetricTarget struct {
	CompanyID string
	Metric    domain.MetricKey
	Target    float64
}

type UpdateWarehouseMetricTarget struct {
	CompanyID   string
	WarehouseID string
	Metric      domain.MetricKey
	Target      float64
}

// AddCompany appends a company that is already recalculated
type AddCompany struct {
	Company domain.Company
}

type DeleteCompany struct {
	CompanyID string
}

func (SetCompanies) Type() ActionType                { return ActionSetCompanies }
func (UpdateCompanyData) Type() ActionType           { return ActionUpdateCompanyData }
func (AddNode) Type() ActionType                     { return ActionAddNode }
func (UpdateNode) Type() ActionType                  { return ActionUpdateNode }
func (DeleteNode) Type() ActionType                  { return ActionDeleteNode }
func (UpdateConnection) Type() ActionType            { return ActionUpdateConnection }
func (ApplyStressTest) Type() ActionType             { return ActionApplyStressTest }
func (ResetScenario) Type() ActionType               { return ActionResetScenario }
func (UpdateNetworkMetricTarget) Type() ActionType   { return ActionUpdateNetworkMetricTarget }
func (UpdateWarehouseMetricTarget) Type() ActionType { return ActionUpdateWarehouseMetricTarget }
func (AddCompany) Type() ActionType                  { return ActionAddCompany }
func (DeleteCompany) Type() ActionType               { return ActionDeleteCompany }

func (a UpdateCompanyData) TargetCompany() string           { return a.CompanyID }
func (a AddNode) TargetCompany() string                     { return a.CompanyID }
func (a UpdateNode) TargetCompany() string                  { return a.CompanyID }
func (a DeleteNode) TargetCompany() string                  { return a.CompanyID }
func (a UpdateConnection) TargetCompany() string            { return a.CompanyID }
func (a ApplyStressTest) TargetCompany() string             { return a.CompanyID }
func (a ResetScenario) TargetCompany() string               { return a.CompanyID }
func (a UpdateNetworkMetricTarget) TargetCompany() string   { return a.CompanyID }
func (a UpdateWarehouseMetricTarget) TargetCompany() string { return a.CompanyID }
