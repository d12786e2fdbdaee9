package curves

import (
	"testing"
	"time"

	"github.com/markusressel/blink2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

const maxSampleValue = 4095

// helper function to create a linear curve configuration
func createLinearCurveConfig(
	id string,
	sensorId string,
	minPeriod time.Duration,
	maxPeriod time.Duration,
) (curve configuration.CurveConfig) {
	curve = configuration.CurveConfig{
		ID: id,
		Linear: &configuration.LinearCurveConfig{
			Sensor: sensorId,
			Min:    minPeriod,
			Max:    maxPeriod,
		},
	}
	return curve
}

// helper function to create a linear curve configuration with steps
func createLinearCurveConfigWithSteps(
	id string,
	sensorId string,
	steps map[int]int,
) (curve configuration.CurveConfig) {
	curve = configuration.CurveConfig{
		ID: id,
		Linear: &configuration.LinearCurveConfig{
			Sensor: sensorId,
			Steps:  steps,
		},
	}
	return curve
}

// helper function to create a function curve configuration
func createFunctionCurveConfig(
	id string,
	function string,
	curveIds []string,
) (curve configuration.CurveConfig) {
	curve = configuration.CurveConfig{
		ID: id,
		Function: &configuration.FunctionCurveConfig{
			Type:   function,
			Curves: curveIds,
		},
	}
	return curve
}

func TestNewPeriodCurveAppliesDefaultBounds(t *testing.T) {
	// GIVEN
	curveConfig := createLinearCurveConfig("curve", "sensor", 0, 0)

	// WHEN
	curve, err := NewPeriodCurve(curveConfig, maxSampleValue)

	// THEN
	assert.NoError(t, err)
	linear := curve.(*LinearPeriodCurve)
	assert.Equal(t, configuration.DefaultMinPeriod, linear.MinPeriod)
	assert.Equal(t, configuration.DefaultMaxPeriod, linear.MaxPeriod)
}

func TestNewPeriodCurveUnknownType(t *testing.T) {
	// GIVEN
	curveConfig := configuration.CurveConfig{ID: "curve"}

	// WHEN
	_, err := NewPeriodCurve(curveConfig, maxSampleValue)

	// THEN
	assert.Error(t, err)
}
