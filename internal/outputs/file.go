package outputs

import (
	"sync"

	"github.com/markusressel/blink2go/internal/configuration"
	"github.com/markusressel/blink2go/internal/util"
)

// FileOutput mirrors the output state into a file as 0/1, f.ex. the
// brightness attribute of a sysfs LED or a plain file for testing.
type FileOutput struct {
	Config configuration.OutputConfig `json:"configuration"`

	State bool `json:"state"`

	mu sync.Mutex
}

func (output *FileOutput) GetId() string {
	return output.Config.ID
}

func (output *FileOutput) GetConfig() configuration.OutputConfig {
	return output.Config
}

func (output *FileOutput) Set(on bool) error {
	output.mu.Lock()
	defer output.mu.Unlock()
	return output.set(on)
}

func (output *FileOutput) set(on bool) error {
	value := 0
	if on {
		value = 1
	}
	err := util.WriteIntToFileAtomic(value, output.Config.File.Path)
	if err != nil {
		return err
	}
	output.State = on
	return nil
}

func (output *FileOutput) Toggle() (bool, error) {
	output.mu.Lock()
	defer output.mu.Unlock()
	err := output.set(!output.State)
	return output.State, err
}

func (output *FileOutput) GetState() bool {
	output.mu.Lock()
	defer output.mu.Unlock()
	return output.State
}

func (output *FileOutput) GetCurveId() string {
	return output.Config.Curve
}

func (output *FileOutput) GetMode() string {
	if len(output.Config.Mode) <= 0 {
		return configuration.ModeBlink
	}
	return output.Config.Mode
}
