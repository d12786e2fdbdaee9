package sensors

import (
	"fmt"

	"github.com/markusressel/blink2go/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	SensorMap = cmap.New[Sensor]()
)

type Sensor interface {
	GetId() string

	GetConfig() configuration.SensorConfig

	// GetValue returns the current raw value of this sensor
	GetValue() (float64, error)

	// GetMovingAvg returns the moving average of this sensor's filtered values
	GetMovingAvg() float64
	SetMovingAvg(avg float64)
}

func NewSensor(config configuration.SensorConfig) (Sensor, error) {
	if config.HwMon != nil {
		return &HwMonSensor{
			Index:  config.HwMon.Index,
			Input:  config.HwMon.VoltageInput,
			Config: config,
		}, nil
	}

	if config.Iio != nil {
		return NewIioSensor(config), nil
	}

	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdSensor{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}

// GetSensor returns the sensor with the given id from the registry
func GetSensor(id string) (Sensor, error) {
	sensor, exists := SensorMap.Get(id)
	if !exists {
		return nil, fmt.Errorf("no sensor with id found: %s", id)
	}
	return sensor, nil
}
