package configuration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntMapFromStringKeys(t *testing.T) {
	// GIVEN
	input := map[string]interface{}{
		"0":    5000,
		"4095": 100,
	}

	// WHEN
	result, err := parseIntMap(input)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, map[int]int{0: 5000, 4095: 100}, result)
}

func TestParseIntMapFromInterfaceKeys(t *testing.T) {
	// GIVEN
	input := map[interface{}]interface{}{
		0:    5000,
		2048: float64(1000),
	}

	// WHEN
	result, err := parseIntMap(input)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, map[int]int{0: 5000, 2048: 1000}, result)
}

func TestParseIntMapInvalidKey(t *testing.T) {
	// GIVEN
	input := map[string]interface{}{
		"not_a_number": 100,
	}

	// WHEN
	_, err := parseIntMap(input)

	// THEN
	assert.Error(t, err)
}

func TestParseIntMapUnsupportedType(t *testing.T) {
	// GIVEN
	input := []int{1, 2, 3}

	// WHEN
	_, err := parseIntMap(input)

	// THEN
	assert.Error(t, err)
}
