package sensors

import (
	"sync"

	"github.com/markusressel/blink2go/internal/configuration"
	"github.com/markusressel/blink2go/internal/util"
)

type FileSensor struct {
	Config configuration.SensorConfig `json:"configuration"`

	MovingAvg float64 `json:"movingAvg"`

	mu sync.Mutex
}

func (sensor *FileSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *FileSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *FileSensor) GetValue() (float64, error) {
	filePath := util.ResolvePath(sensor.Config.File.Path)

	integer, err := util.ReadIntFromFile(filePath)
	if err != nil {
		return 0, err
	}

	return float64(integer), nil
}

func (sensor *FileSensor) GetMovingAvg() (avg float64) {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	return sensor.MovingAvg
}

func (sensor *FileSensor) SetMovingAvg(avg float64) {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	sensor.MovingAvg = avg
}
