package scenario

import "github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"

// Recalculator derives a snapshot's computed fields from its raw inputs
type Recalculator func(domain.ScenarioData) domain.ScenarioData

// baselineSync says what happens to baseData after an action is applied
type baselineSync int

const (
	// keepBaseline leaves baseData as the handler returned it
	keepBaseline baselineSync = iota
	// mirrorData replaces baseData with a deep copy of the recalculated data
	mirrorData
	// recalcBaseline recalculates baseData after the handler edited it
	recalcBaseline
)

type policy struct {
	recalculate bool
	baseline    baselineSync
}

// policies is the single source of truth for which actions recalculate and
// which ones write through to the baseline. Live edits and stress tests stay
// transient so RESET_SCENARIO can roll them back.
var policies = map[ActionType]policy{
	ActionSetCompanies:                {recalculate: false, baseline: keepBaseline},
	ActionUpdateCompanyData:           {recalculate: true, baseline: keepBaseline},
	ActionAddNode:                     {recalculate: true, baseline: mirrorData},
	ActionUpdateNode:                  {recalculate: true, baseline: mirrorData},
	ActionDeleteNode:                  {recalculate: true, baseline: mirrorData},
	ActionUpdateConnection:            {recalculate: true, baseline: mirrorData},
	ActionApplyStressTest:             {recalculate: true, baseline: keepBaseline},
	ActionResetScenario:               {recalculate: true, baseline: keepBaseline},
	ActionUpdateNetworkMetricTarget:   {recalculate: true, baseline: recalcBaseline},
	ActionUpdateWarehouseMetricTarget: {recalculate: true, baseline: recalcBaseline},
	ActionAddCompany:                  {recalculate: false, baseline: keepBaseline},
	ActionDeleteCompany:               {recalculate: false, baseline: keepBaseline},
}

// Reducer applies actions to the company list. It never mutates its input.
type Reducer struct {
	recalc Recalculator
}

// NewReducer creates a reducer that derives metrics with recalc
func NewReducer(recalc Recalculator) *Reducer {
	return &Reducer{recalc: recalc}
}

// Reduce returns the next company list and whether the action changed
// anything. Actions naming an unknown company, node or metric are no-ops.
func (r *Reducer) Reduce(state []domain.Company, action Action) ([]domain.Company, bool) {
	switch a := action.(type) {
	case SetCompanies:
		return domain.CloneCompanies(a.Companies), true
	case AddCompany:
		next := make([]domain.Company, 0, len(state)+1)
		next = append(next, state...)
		return append(next, a.Company.Clone()), true
	case DeleteCompany:
		next := make([]domain.Company, 0, len(state))
		for _, c := range state {
			if c.ID != a.CompanyID {
				next = append(next, c)
			}
		}
		return next, len(next) != len(state)
	case CompanyAction:
		return r.reduceCompany(state, a)
	}
	return state, false
}

func (r *Reducer) reduceCompany(state []domain.Company, action CompanyAction) ([]domain.Company, bool) {
	idx := -1
	for i, c := range state {
		if c.ID == action.TargetCompany() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return state, false
	}

	updated, applied := action.apply(state[idx])
	if !applied {
		return state, false
	}
	updated = r.settle(updated, policies[action.Type()])

	next := make([]domain.Company, len(state))
	copy(next, state)
	next[idx] = updated
	return next, true
}

// settle runs the post-action policy: recalculation, then baseline sync
func (r *Reducer) settle(c domain.Company, p policy) domain.Company {
	if p.recalculate {
		c.Data = r.recalc(c.Data)
	}
	switch p.baseline {
	case mirrorData:
		c.BaseData = c.Data.Clone()
	case recalcBaseline:
		c.BaseData = r.recalc(c.BaseData)
	}
	return c
}
