package internal

import (
	"testing"

	"github.com/markusressel/blink2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func TestResolveThresholdDefaultsToHalfRange(t *testing.T) {
	// GIVEN
	config := configuration.OutputConfig{
		ID:     "led",
		Mode:   configuration.ModeThreshold,
		Sensor: "sensor",
	}

	// WHEN
	threshold := resolveThreshold(config, 4095)

	// THEN
	assert.Equal(t, 2047, threshold)
}

func TestResolveThresholdHonorsConfiguredValue(t *testing.T) {
	// GIVEN
	configured := 3000
	config := configuration.OutputConfig{
		ID:        "led",
		Mode:      configuration.ModeThreshold,
		Sensor:    "sensor",
		Threshold: &configured,
	}

	// WHEN
	threshold := resolveThreshold(config, 4095)

	// THEN
	assert.Equal(t, 3000, threshold)
}

func TestResolveThresholdHonorsExplicitZero(t *testing.T) {
	// GIVEN
	configured := 0
	config := configuration.OutputConfig{
		ID:        "led",
		Mode:      configuration.ModeThreshold,
		Sensor:    "sensor",
		Threshold: &configured,
	}

	// WHEN
	threshold := resolveThreshold(config, 4095)

	// THEN
	// an explicit 0 is a valid threshold (always on above 0), not "unset"
	assert.Equal(t, 0, threshold)
}
