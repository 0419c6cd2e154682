package scenario

import (
	"reflect"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
)

// StressTarget returns the node a stress test hits: the supplier with the
// largest supply capacity for an outage, the customer with the largest
// demand for a spike. Ties go to the first in list order.
func StressTarget(base domain.ScenarioData, test StressTest) (string, bool) {
	switch test {
	case StressSupplierOutage:
		if len(base.Suppliers) == 0 {
			return "", false
		}
		best := base.Suppliers[0]
		for _, s := range base.Suppliers[1:] {
			if s.SupplyCapacity > best.SupplyCapacity {
				best = s
			}
		}
		return best.ID, true
	case StressDemandSpike:
		if len(base.Customers) == 0 {
			return "", false
		}
		best := base.Customers[0]
		for _, c := range base.Customers[1:] {
			if c.Demand > best.Demand {
				best = c
			}
		}
		return best.ID, true
	}
	return "", false
}

// HasActiveScenario reports whether the live data has drifted from the
// baseline, i.e. a stress test or live edit is waiting for a reset.
func HasActiveScenario(c domain.Company) bool {
	return !reflect.DeepEqual(c.Data, c.BaseData)
}
