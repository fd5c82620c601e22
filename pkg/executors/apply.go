package executors

import (
	"fmt"

	"github.com/yurifrl/spendcast/pkg/models"
	"github.com/yurifrl/spendcast/pkg/plan"
)

// Apply runs the plan's analyses in the order listed. records are the raw
// input cells used by explore and may be nil.
func (e *Executor) Apply(p *plan.Plan, t models.Table, records [][]string) error {
	e.logger.Debug("applying plan", "analyses", p.Analyses)

	for _, a := range p.Analyses {
		var err error
		switch a {
		case plan.Summary:
			err = e.Summary(t)
		case plan.Trends:
			err = e.Trends(t)
		case plan.Explore:
			err = e.Explore(t, records)
		case plan.ARIMA:
			_, err = e.ARIMA(t)
		case plan.Boost:
			_, err = e.Boost(t)
		default:
			err = fmt.Errorf("unknown analysis %q", a)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", a, err)
		}
	}
	return nil
}
