package configuration

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Configuration {
	return Configuration{
		SamplerPollingRate: 100 * time.Millisecond,
		SampleWindowSize:   10,
		MaxSampleValue:     4095,
		Sensors: []SensorConfig{
			{
				ID: "sensor",
				File: &FileSensorConfig{
					Path: "/tmp/sensor",
				},
			},
		},
		Curves: []CurveConfig{
			{
				ID: "curve",
				Linear: &LinearCurveConfig{
					Sensor: "sensor",
				},
			},
		},
		Outputs: []OutputConfig{
			{
				ID:    "led",
				Curve: "curve",
				File: &FileOutputConfig{
					Path: "/tmp/led",
				},
			},
		},
	}
}

func TestValidateValidConfig(t *testing.T) {
	// GIVEN
	config := validConfig()

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateInvalidWindowSize(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.SampleWindowSize = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sampleWindowSize must be > 0")
}

func TestValidateDuplicateSensorId(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensors = append(config.Sensors, config.Sensors[0])

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "duplicate sensor id detected: sensor")
}

func TestValidateSensorSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensors[0].File = nil

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor sensor: sub-configuration for sensor is missing, use one of: hwmon | iio | file | cmd")
}

func TestValidateIioSensorInvalidDevice(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensors[0].File = nil
	config.Sensors[0].Iio = &IioSensorConfig{
		Device:  -1,
		Channel: 0,
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor sensor: invalid iio device, must be >= 0")
}

func TestValidateIioSensorInvalidChannel(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensors[0].File = nil
	config.Sensors[0].Iio = &IioSensorConfig{
		Device:  0,
		Channel: -1,
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor sensor: invalid iio channel, must be >= 0")
}

func TestValidateSensorWithMultipleSubConfigs(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensors[0].Cmd = &CmdSensorConfig{Exec: "/usr/bin/true"}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor sensor: only one sensor type can be used per sensor definition block")
}

func TestValidateCurveReferencesUnknownSensor(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curves[0].Linear.Sensor = "unknown"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "curve curve: no sensor definition with id 'unknown' found")
}

func TestValidateCurveMinLargerThanMax(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curves[0].Linear.Min = 2 * time.Second
	config.Curves[0].Linear.Max = 1 * time.Second

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "curve curve: min period is larger than max period")
}

func TestValidateCurveStepOutOfRange(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curves[0].Linear.Steps = map[int]int{
		5000: 100,
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "curve curve: step sample value 5000 outside of [0, 4095]")
}

func TestValidateCurveDependencyCycle(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curves = append(config.Curves,
		CurveConfig{
			ID: "first",
			Function: &FunctionCurveConfig{
				Type:   FunctionAverage,
				Curves: []string{"second"},
			},
		},
		CurveConfig{
			ID: "second",
			Function: &FunctionCurveConfig{
				Type:   FunctionAverage,
				Curves: []string{"first"},
			},
		},
	)

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "curve dependency cycle")
}

func TestValidateCurveSelfReference(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curves = append(config.Curves, CurveConfig{
		ID: "function_curve",
		Function: &FunctionCurveConfig{
			Type:   FunctionMinimum,
			Curves: []string{"function_curve"},
		},
	})

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "curve function_curve: a curve cannot reference itself")
}

func TestValidateFunctionCurveWithUnsupportedType(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curves = append(config.Curves, CurveConfig{
		ID: "function_curve",
		Function: &FunctionCurveConfig{
			Type:   "median",
			Curves: []string{"curve"},
		},
	})

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "curve function_curve: unsupported function type 'median', use one of: minimum | maximum | average")
}

func TestValidateFunctionCurveMixedSensors(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensors = append(config.Sensors, SensorConfig{
		ID: "other_sensor",
		File: &FileSensorConfig{
			Path: "/tmp/other",
		},
	})
	config.Curves = append(config.Curves,
		CurveConfig{
			ID: "other_curve",
			Linear: &LinearCurveConfig{
				Sensor: "other_sensor",
			},
		},
		CurveConfig{
			ID: "function_curve",
			Function: &FunctionCurveConfig{
				Type:   FunctionMinimum,
				Curves: []string{"curve", "other_curve"},
			},
		},
	)

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "more than one sensor")
}

func TestValidateOutputWithoutCurve(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Outputs[0].Curve = ""

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "output led: missing curve definition in configuration entry")
}

func TestValidateThresholdOutputWithoutSensor(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Outputs[0].Mode = ModeThreshold
	config.Outputs[0].Curve = ""

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "output led: missing sensor definition in configuration entry")
}

func TestValidateThresholdOutOfRange(t *testing.T) {
	// GIVEN
	config := validConfig()
	threshold := 5000
	config.Outputs[0].Mode = ModeThreshold
	config.Outputs[0].Sensor = "sensor"
	config.Outputs[0].Threshold = &threshold

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "output led: threshold 5000 outside of [0, 4095]")
}

func TestValidateThresholdZeroIsValid(t *testing.T) {
	// GIVEN
	config := validConfig()
	threshold := 0
	config.Outputs[0].Mode = ModeThreshold
	config.Outputs[0].Sensor = "sensor"
	config.Outputs[0].Curve = ""
	config.Outputs[0].Threshold = &threshold

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateUnsupportedOutputMode(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Outputs[0].Mode = "pulse"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "output led: unsupported mode 'pulse', use one of: blink | threshold")
}

func TestValidateCmdOutputMissingOffCommand(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Outputs[0].File = nil
	config.Outputs[0].Cmd = &CmdOutputConfig{
		On: &ExecConfig{Exec: "/usr/bin/led-on"},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "output led: missing 'off' command configuration")
}

func TestValidateGpioOutputWithoutChip(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Outputs[0].File = nil
	config.Outputs[0].Gpio = &GpioOutputConfig{Line: 16}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "output led: no gpio chip provided")
}

func TestValidateHwMonSensorInvalidIndex(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensors[0].File = nil
	config.Sensors[0].HwMon = &HwMonSensorConfig{
		Platform: "platform",
		Index:    0,
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, fmt.Sprintf("sensor %s: invalid index, must be >= 1", config.Sensors[0].ID))
}

func TestResolveCurveSensorLinear(t *testing.T) {
	// GIVEN
	config := validConfig()

	// WHEN
	sensorId, err := ResolveCurveSensor(&config, "curve")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "sensor", sensorId)
}

func TestResolveCurveSensorTransitive(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curves = append(config.Curves, CurveConfig{
		ID: "function_curve",
		Function: &FunctionCurveConfig{
			Type:   FunctionMaximum,
			Curves: []string{"curve"},
		},
	})

	// WHEN
	sensorId, err := ResolveCurveSensor(&config, "function_curve")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "sensor", sensorId)
}

func TestResolveCurveSensorUnknownCurve(t *testing.T) {
	// GIVEN
	config := validConfig()

	// WHEN
	_, err := ResolveCurveSensor(&config, "unknown")

	// THEN
	assert.EqualError(t, err, "no curve definition with id 'unknown' found")
}
