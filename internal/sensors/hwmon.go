package sensors

import (
	"sync"

	"github.com/markusressel/blink2go/internal/configuration"
	"github.com/markusressel/blink2go/internal/util"
)

type HwMonSensor struct {
	Label string `json:"label"`
	Index int    `json:"index"`
	// Input is the sysfs path of the in*_input file of this sensor
	Input string `json:"input"`

	Config configuration.SensorConfig `json:"configuration"`

	MovingAvg float64 `json:"movingAvg"`

	mu sync.Mutex
}

func (sensor *HwMonSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *HwMonSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *HwMonSensor) GetValue() (float64, error) {
	integer, err := util.ReadIntFromFile(sensor.Input)
	if err != nil {
		return 0, err
	}
	return float64(integer), nil
}

func (sensor *HwMonSensor) GetMovingAvg() (avg float64) {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	return sensor.MovingAvg
}

func (sensor *HwMonSensor) SetMovingAvg(avg float64) {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	sensor.MovingAvg = avg
}
