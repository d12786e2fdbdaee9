package outputs

import (
	"fmt"
	"sync"
	"time"

	"github.com/markusressel/blink2go/internal/configuration"
	"github.com/markusressel/blink2go/internal/util"
)

type CmdOutput struct {
	Config configuration.OutputConfig `json:"configuration"`

	State bool `json:"state"`

	mu sync.Mutex
}

func (output *CmdOutput) GetId() string {
	return output.Config.ID
}

func (output *CmdOutput) GetConfig() configuration.OutputConfig {
	return output.Config
}

func (output *CmdOutput) Set(on bool) error {
	output.mu.Lock()
	defer output.mu.Unlock()
	return output.set(on)
}

func (output *CmdOutput) set(on bool) error {
	timeout := 2 * time.Second

	execConfig := output.Config.Cmd.Off
	if on {
		execConfig = output.Config.Cmd.On
	}

	_, err := util.SafeCmdExecution(execConfig.Exec, execConfig.Args, timeout)
	if err != nil {
		return fmt.Errorf("output %s: %s", output.GetId(), err.Error())
	}

	output.State = on
	return nil
}

func (output *CmdOutput) Toggle() (bool, error) {
	output.mu.Lock()
	defer output.mu.Unlock()
	err := output.set(!output.State)
	return output.State, err
}

func (output *CmdOutput) GetState() bool {
	output.mu.Lock()
	defer output.mu.Unlock()
	return output.State
}

func (output *CmdOutput) GetCurveId() string {
	return output.Config.Curve
}

func (output *CmdOutput) GetMode() string {
	if len(output.Config.Mode) <= 0 {
		return configuration.ModeBlink
	}
	return output.Config.Mode
}
