package configuration

import "time"

type CurveConfig struct {
	ID       string               `json:"id"`
	Linear   *LinearCurveConfig   `json:"linear,omitempty"`
	Function *FunctionCurveConfig `json:"function,omitempty"`
}

type LinearCurveConfig struct {
	// Sensor is the id of the sensor whose filtered value drives this curve.
	Sensor string `json:"sensor"`
	// Min is the shortest period the curve may yield (at the top of the
	// sample range).
	Min time.Duration `json:"min"`
	// Max is the longest period the curve may yield (at the bottom of the
	// sample range).
	Max time.Duration `json:"max"`
	// Steps optionally defines the curve as interpolation points
	// mapping a sample value to a period in milliseconds. When set,
	// Min and Max only act as clamp bounds.
	Steps map[int]int `json:"steps,omitempty"`
}

const (
	FunctionMinimum = "minimum"
	FunctionMaximum = "maximum"
	FunctionAverage = "average"
)

type FunctionCurveConfig struct {
	Type   string   `json:"type"`
	Curves []string `json:"curves"`
}

const (
	// DefaultMinPeriod is the shortest blink period used when a linear
	// curve does not specify one.
	DefaultMinPeriod = 100 * time.Millisecond
	// DefaultMaxPeriod is the longest blink period used when a linear
	// curve does not specify one.
	DefaultMaxPeriod = 5000 * time.Millisecond
)
