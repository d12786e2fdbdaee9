package configuration

import (
	"fmt"

	"github.com/looplab/tarjan"
	"github.com/markusressel/blink2go/internal/ui"
	"github.com/markusressel/blink2go/internal/util"
	"golang.org/x/exp/slices"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	if config.SampleWindowSize <= 0 {
		return fmt.Errorf("sampleWindowSize must be > 0")
	}
	if config.MaxSampleValue <= 0 {
		return fmt.Errorf("maxSampleValue must be > 0")
	}
	if config.SamplerPollingRate <= 0 {
		return fmt.Errorf("samplerPollingRate must be > 0")
	}

	err := validateSensors(config)
	if err != nil {
		return err
	}
	err = validateCurves(config)
	if err != nil {
		return err
	}
	err = validateOutputs(config)
	if err != nil {
		return err
	}

	if containsCmdSensors(config) {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return nil
}

func containsCmdSensors(config *Configuration) bool {
	for _, sensorConfig := range config.Sensors {
		if sensorConfig.Cmd != nil {
			return true
		}
	}

	return false
}

func validateSensors(config *Configuration) error {
	sensorIds := []string{}
	for _, sensorConfig := range config.Sensors {
		if slices.Contains(sensorIds, sensorConfig.ID) {
			return fmt.Errorf("duplicate sensor id detected: %s", sensorConfig.ID)
		}
		sensorIds = append(sensorIds, sensorConfig.ID)

		subConfigs := 0
		if sensorConfig.HwMon != nil {
			subConfigs++
		}
		if sensorConfig.Iio != nil {
			subConfigs++
		}
		if sensorConfig.File != nil {
			subConfigs++
		}
		if sensorConfig.Cmd != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("sensor %s: only one sensor type can be used per sensor definition block", sensorConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("sensor %s: sub-configuration for sensor is missing, use one of: hwmon | iio | file | cmd", sensorConfig.ID)
		}

		if !isSensorConfigInUse(sensorConfig, config) {
			ui.Warning("Unused sensor configuration: %s", sensorConfig.ID)
		}

		if sensorConfig.HwMon != nil {
			if sensorConfig.HwMon.Index <= 0 {
				return fmt.Errorf("sensor %s: invalid index, must be >= 1", sensorConfig.ID)
			}
		}

		if sensorConfig.Iio != nil {
			if sensorConfig.Iio.Device < 0 {
				return fmt.Errorf("sensor %s: invalid iio device, must be >= 0", sensorConfig.ID)
			}
			if sensorConfig.Iio.Channel < 0 {
				return fmt.Errorf("sensor %s: invalid iio channel, must be >= 0", sensorConfig.ID)
			}
		}
	}

	return nil
}

func isSensorConfigInUse(config SensorConfig, c *Configuration) bool {
	for _, curveConfig := range c.Curves {
		// function curves cannot reference sensors directly
		if curveConfig.Linear != nil && curveConfig.Linear.Sensor == config.ID {
			return true
		}
	}
	for _, outputConfig := range c.Outputs {
		if outputConfig.Sensor == config.ID {
			return true
		}
	}

	return false
}

func validateCurves(config *Configuration) error {
	graph := make(map[interface{}][]interface{})

	curveIds := []string{}
	for _, curveConfig := range config.Curves {
		if slices.Contains(curveIds, curveConfig.ID) {
			return fmt.Errorf("duplicate curve id detected: %s", curveConfig.ID)
		}
		curveIds = append(curveIds, curveConfig.ID)

		subConfigs := 0
		if curveConfig.Linear != nil {
			subConfigs++
		}
		if curveConfig.Function != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("curve %s: only one curve type can be used per curve definition block", curveConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("curve %s: sub-configuration for curve is missing, use one of: linear | function", curveConfig.ID)
		}

		if !isCurveConfigInUse(curveConfig, config.Curves, config.Outputs) {
			ui.Warning("Unused curve configuration: %s", curveConfig.ID)
		}

		if curveConfig.Function != nil {
			supportedTypes := []string{FunctionMinimum, FunctionMaximum, FunctionAverage}
			if !slices.Contains(supportedTypes, curveConfig.Function.Type) {
				return fmt.Errorf("curve %s: unsupported function type '%s', use one of: minimum | maximum | average", curveConfig.ID, curveConfig.Function.Type)
			}

			if len(curveConfig.Function.Curves) <= 0 {
				return fmt.Errorf("curve %s: function curve must reference at least one curve", curveConfig.ID)
			}

			var connections []interface{}
			for _, curve := range curveConfig.Function.Curves {
				if curve == curveConfig.ID {
					return fmt.Errorf("curve %s: a curve cannot reference itself", curveConfig.ID)
				}
				if !curveIdExists(curve, config) {
					return fmt.Errorf("curve %s: no curve definition with id '%s' found", curveConfig.ID, curve)
				}
				connections = append(connections, curve)
			}
			graph[curveConfig.ID] = connections
		}

		if curveConfig.Linear != nil {
			linear := curveConfig.Linear
			if len(linear.Sensor) <= 0 {
				return fmt.Errorf("curve %s: missing sensor id", curveConfig.ID)
			}

			if !sensorIdExists(linear.Sensor, config) {
				return fmt.Errorf("curve %s: no sensor definition with id '%s' found", curveConfig.ID, linear.Sensor)
			}

			if linear.Min < 0 || linear.Max < 0 {
				return fmt.Errorf("curve %s: periods cannot be negative", curveConfig.ID)
			}
			if linear.Min != 0 && linear.Max != 0 && linear.Min > linear.Max {
				return fmt.Errorf("curve %s: min period is larger than max period", curveConfig.ID)
			}

			for sample := range linear.Steps {
				if sample < 0 || sample > config.MaxSampleValue {
					return fmt.Errorf("curve %s: step sample value %d outside of [0, %d]", curveConfig.ID, sample, config.MaxSampleValue)
				}
			}
		}
	}

	err := validateNoLoops(graph)
	if err != nil {
		return err
	}

	return validateFunctionCurveSensors(config)
}

// validateFunctionCurveSensors ensures that all curves referenced by a
// function curve are (transitively) driven by the same sensor, since an
// output can only consume filtered values of a single sensor.
func validateFunctionCurveSensors(config *Configuration) error {
	for _, curveConfig := range config.Curves {
		if curveConfig.Function == nil {
			continue
		}

		sensorId, err := ResolveCurveSensor(config, curveConfig.ID)
		if err != nil {
			return fmt.Errorf("curve %s: %s", curveConfig.ID, err)
		}
		if len(sensorId) <= 0 {
			return fmt.Errorf("curve %s: unable to resolve a sensor for this curve", curveConfig.ID)
		}
	}

	return nil
}

// ResolveCurveSensor resolves the id of the sensor that (transitively)
// drives the curve with the given id. Returns an error if the referenced
// curves are driven by more than one sensor.
func ResolveCurveSensor(config *Configuration, curveId string) (string, error) {
	for _, curveConfig := range config.Curves {
		if curveConfig.ID != curveId {
			continue
		}

		if curveConfig.Linear != nil {
			return curveConfig.Linear.Sensor, nil
		}

		if curveConfig.Function != nil {
			sensorId := ""
			for _, childId := range curveConfig.Function.Curves {
				childSensorId, err := ResolveCurveSensor(config, childId)
				if err != nil {
					return "", err
				}
				if len(sensorId) > 0 && childSensorId != sensorId {
					return "", fmt.Errorf("curves '%v' reference more than one sensor", curveConfig.Function.Curves)
				}
				sensorId = childSensorId
			}
			return sensorId, nil
		}
	}

	return "", fmt.Errorf("no curve definition with id '%s' found", curveId)
}

func sensorIdExists(sensorId string, config *Configuration) bool {
	for _, sensor := range config.Sensors {
		if sensor.ID == sensorId {
			return true
		}
	}

	return false
}

func validateNoLoops(graph map[interface{}][]interface{}) error {
	output := tarjan.Connections(graph)
	for _, items := range output {
		if len(items) > 1 {
			return fmt.Errorf("you have created a curve dependency cycle: %v", items)
		}
	}
	return nil
}

func isCurveConfigInUse(config CurveConfig, curves []CurveConfig, outputs []OutputConfig) bool {
	for _, curveConfig := range curves {
		if curveConfig.Function != nil {
			if slices.Contains(curveConfig.Function.Curves, config.ID) {
				return true
			}
		}
	}

	for _, outputConfig := range outputs {
		if outputConfig.Curve == config.ID {
			return true
		}
	}

	return false
}

func validateOutputs(config *Configuration) error {
	outputIds := []string{}
	for _, outputConfig := range config.Outputs {
		if slices.Contains(outputIds, outputConfig.ID) {
			return fmt.Errorf("duplicate output id detected: %s", outputConfig.ID)
		}
		outputIds = append(outputIds, outputConfig.ID)

		subConfigs := 0
		if outputConfig.Gpio != nil {
			subConfigs++
		}
		if outputConfig.File != nil {
			subConfigs++
		}
		if outputConfig.Cmd != nil {
			subConfigs++
		}

		if subConfigs > 1 {
			return fmt.Errorf("output %s: only one output type can be used per output definition block", outputConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("output %s: sub-configuration for output is missing, use one of: gpio | file | cmd", outputConfig.ID)
		}

		mode := outputConfig.Mode
		if len(mode) <= 0 {
			mode = ModeBlink
		}
		switch mode {
		case ModeBlink:
			if len(outputConfig.Curve) <= 0 {
				return fmt.Errorf("output %s: missing curve definition in configuration entry", outputConfig.ID)
			}
			if !curveIdExists(outputConfig.Curve, config) {
				return fmt.Errorf("output %s: no curve definition with id '%s' found", outputConfig.ID, outputConfig.Curve)
			}
		case ModeThreshold:
			if len(outputConfig.Sensor) <= 0 {
				return fmt.Errorf("output %s: missing sensor definition in configuration entry", outputConfig.ID)
			}
			if !sensorIdExists(outputConfig.Sensor, config) {
				return fmt.Errorf("output %s: no sensor definition with id '%s' found", outputConfig.ID, outputConfig.Sensor)
			}
			if outputConfig.Threshold != nil {
				threshold := *outputConfig.Threshold
				if threshold < 0 || threshold > config.MaxSampleValue {
					return fmt.Errorf("output %s: threshold %d outside of [0, %d]", outputConfig.ID, threshold, config.MaxSampleValue)
				}
			}
		default:
			return fmt.Errorf("output %s: unsupported mode '%s', use one of: blink | threshold", outputConfig.ID, mode)
		}

		if outputConfig.Gpio != nil {
			if len(outputConfig.Gpio.Chip) <= 0 {
				return fmt.Errorf("output %s: no gpio chip provided", outputConfig.ID)
			}
			if outputConfig.Gpio.Line < 0 {
				return fmt.Errorf("output %s: invalid gpio line, must be >= 0", outputConfig.ID)
			}
		}

		if outputConfig.File != nil {
			if len(outputConfig.File.Path) <= 0 {
				return fmt.Errorf("output %s: no file path provided", outputConfig.ID)
			}
		}

		if outputConfig.Cmd != nil {
			cmdConfig := outputConfig.Cmd
			if cmdConfig.On == nil || len(cmdConfig.On.Exec) <= 0 {
				return fmt.Errorf("output %s: missing 'on' command configuration", outputConfig.ID)
			}
			if cmdConfig.Off == nil || len(cmdConfig.Off.Exec) <= 0 {
				return fmt.Errorf("output %s: missing 'off' command configuration", outputConfig.ID)
			}
		}
	}

	return nil
}

func curveIdExists(curveId string, config *Configuration) bool {
	for _, curve := range config.Curves {
		if curve.ID == curveId {
			return true
		}
	}

	return false
}
