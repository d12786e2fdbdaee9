package curves

import (
	"fmt"
	"time"

	"github.com/markusressel/blink2go/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	PeriodCurveMap = cmap.New[PeriodCurve]()
)

// PeriodCurve maps a filtered sample value to an actuation period.
type PeriodCurve interface {
	GetId() string

	// Evaluate computes the period for the given filtered value.
	// The result is always within the clamp bounds of the curve,
	// for any value in [0, maxSampleValue].
	Evaluate(value int) (period time.Duration, err error)

	// CurrentPeriod returns the result of the most recent evaluation
	CurrentPeriod() time.Duration
}

func NewPeriodCurve(config configuration.CurveConfig, maxSampleValue int) (PeriodCurve, error) {
	if config.Linear != nil {
		minPeriod := config.Linear.Min
		if minPeriod <= 0 {
			minPeriod = configuration.DefaultMinPeriod
		}
		maxPeriod := config.Linear.Max
		if maxPeriod <= 0 {
			maxPeriod = configuration.DefaultMaxPeriod
		}

		return &LinearPeriodCurve{
			Config:         config,
			MinPeriod:      minPeriod,
			MaxPeriod:      maxPeriod,
			MaxSampleValue: maxSampleValue,
		}, nil
	}

	if config.Function != nil {
		return &FunctionPeriodCurve{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching curve type for curve: %s", config.ID)
}

// GetPeriodCurve returns the curve with the given id from the registry
func GetPeriodCurve(id string) (PeriodCurve, error) {
	curve, exists := PeriodCurveMap.Get(id)
	if !exists {
		return nil, fmt.Errorf("no curve with id found: %s", id)
	}
	return curve, nil
}
