package sensors

import (
	"fmt"
	"sync"

	"github.com/markusressel/blink2go/internal/configuration"
	"github.com/markusressel/blink2go/internal/util"
)

// IioSensor reads a raw ADC value from a sysfs Industrial I/O voltage
// channel attribute.
type IioSensor struct {
	// Input is the sysfs path of the in_voltage*_raw attribute of this sensor
	Input string `json:"input"`

	Config configuration.SensorConfig `json:"configuration"`

	MovingAvg float64 `json:"movingAvg"`

	mu sync.Mutex
}

func NewIioSensor(config configuration.SensorConfig) *IioSensor {
	return &IioSensor{
		Input: fmt.Sprintf(
			"/sys/bus/iio/devices/iio:device%d/in_voltage%d_raw",
			config.Iio.Device,
			config.Iio.Channel,
		),
		Config: config,
	}
}

func (sensor *IioSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *IioSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *IioSensor) GetValue() (float64, error) {
	integer, err := util.ReadIntFromFile(sensor.Input)
	if err != nil {
		return 0, err
	}
	return float64(integer), nil
}

func (sensor *IioSensor) GetMovingAvg() (avg float64) {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	return sensor.MovingAvg
}

func (sensor *IioSensor) SetMovingAvg(avg float64) {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	sensor.MovingAvg = avg
}
