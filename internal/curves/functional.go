package curves

import (
	"fmt"
	"sync"
	"time"

	"github.com/markusressel/blink2go/internal/configuration"
)

// FunctionPeriodCurve combines the periods of other curves using a
// fixed aggregate function.
type FunctionPeriodCurve struct {
	Config configuration.CurveConfig `json:"config"`

	Period time.Duration `json:"period"`

	mu sync.Mutex
}

func (c *FunctionPeriodCurve) GetId() string {
	return c.Config.ID
}

func (c *FunctionPeriodCurve) Evaluate(value int) (period time.Duration, err error) {
	var periods []time.Duration
	for _, curveId := range c.Config.Function.Curves {
		curve, err := GetPeriodCurve(curveId)
		if err != nil {
			return 0, err
		}
		p, err := curve.Evaluate(value)
		if err != nil {
			return 0, err
		}
		periods = append(periods, p)
	}

	switch c.Config.Function.Type {
	case configuration.FunctionMinimum:
		period = periods[0]
		for _, p := range periods {
			if p < period {
				period = p
			}
		}
	case configuration.FunctionMaximum:
		period = periods[0]
		for _, p := range periods {
			if p > period {
				period = p
			}
		}
	case configuration.FunctionAverage:
		var total time.Duration
		for _, p := range periods {
			total += p
		}
		period = total / time.Duration(len(periods))
	default:
		return 0, fmt.Errorf("unknown curve function: %s", c.Config.Function.Type)
	}

	c.setPeriod(period)
	return period, nil
}

func (c *FunctionPeriodCurve) setPeriod(period time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Period = period
}

func (c *FunctionPeriodCurve) CurrentPeriod() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Period
}
