package curves

import (
	"sync"
	"time"

	"github.com/markusressel/blink2go/internal/configuration"
	"github.com/markusressel/blink2go/internal/ui"
	"github.com/markusressel/blink2go/internal/util"
)

// LinearPeriodCurve maps a sample value to a period using an inverse
// linear law: the higher the sensed value, the shorter the period.
type LinearPeriodCurve struct {
	Config configuration.CurveConfig `json:"config"`

	MinPeriod      time.Duration `json:"minPeriod"`
	MaxPeriod      time.Duration `json:"maxPeriod"`
	MaxSampleValue int           `json:"maxSampleValue"`

	Period time.Duration `json:"period"`

	mu sync.Mutex
}

func (c *LinearPeriodCurve) GetId() string {
	return c.Config.ID
}

func (c *LinearPeriodCurve) Evaluate(value int) (period time.Duration, err error) {
	steps := c.Config.Linear.Steps
	if steps != nil {
		interpolationSteps := make(map[int]float64, len(steps))
		for sample, millis := range steps {
			interpolationSteps[sample] = float64(millis)
		}
		millis := util.CalculateInterpolatedCurveValue(interpolationSteps, util.InterpolationTypeLinear, float64(value))
		period = time.Duration(millis) * time.Millisecond
	} else {
		ratio := util.Ratio(float64(value), 0, float64(c.MaxSampleValue))
		period = c.MaxPeriod - time.Duration(ratio*float64(c.MaxPeriod-c.MinPeriod))
	}

	period = time.Duration(util.Coerce(float64(period), float64(c.MinPeriod), float64(c.MaxPeriod)))

	ui.Debug("Evaluating curve '%s'. Value '%d'. Desired period: %v", c.Config.ID, value, period)
	c.setPeriod(period)
	return period, nil
}

func (c *LinearPeriodCurve) setPeriod(period time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Period = period
}

func (c *LinearPeriodCurve) CurrentPeriod() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Period
}
