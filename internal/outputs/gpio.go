//go:build linux

package outputs

import (
	"fmt"
	"sync"

	"github.com/markusressel/blink2go/internal/configuration"
	"github.com/warthog618/go-gpiocdev"
)

type GpioOutput struct {
	Config configuration.OutputConfig `json:"configuration"`

	State bool `json:"state"`

	line *gpiocdev.Line
	mu   sync.Mutex
}

// NewGpioOutput requests the configured gpio line as an output,
// initialized to off.
func NewGpioOutput(config configuration.OutputConfig) (Output, error) {
	chip, err := gpiocdev.NewChip(config.Gpio.Chip)
	if err != nil {
		return nil, fmt.Errorf("output %s: open gpio chip %s: %w", config.ID, config.Gpio.Chip, err)
	}
	defer chip.Close()

	line, err := chip.RequestLine(config.Gpio.Line, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("output %s: request gpio line %d: %w", config.ID, config.Gpio.Line, err)
	}

	return &GpioOutput{
		Config: config,
		line:   line,
	}, nil
}

func (output *GpioOutput) GetId() string {
	return output.Config.ID
}

func (output *GpioOutput) GetConfig() configuration.OutputConfig {
	return output.Config
}

func (output *GpioOutput) Set(on bool) error {
	output.mu.Lock()
	defer output.mu.Unlock()
	return output.set(on)
}

func (output *GpioOutput) set(on bool) error {
	value := 0
	if on {
		value = 1
	}
	if err := output.line.SetValue(value); err != nil {
		return fmt.Errorf("output %s: set gpio line: %w", output.Config.ID, err)
	}
	output.State = on
	return nil
}

func (output *GpioOutput) Toggle() (bool, error) {
	output.mu.Lock()
	defer output.mu.Unlock()
	err := output.set(!output.State)
	return output.State, err
}

func (output *GpioOutput) GetState() bool {
	output.mu.Lock()
	defer output.mu.Unlock()
	return output.State
}

func (output *GpioOutput) GetCurveId() string {
	return output.Config.Curve
}

func (output *GpioOutput) GetMode() string {
	if len(output.Config.Mode) <= 0 {
		return configuration.ModeBlink
	}
	return output.Config.Mode
}

// Close releases the gpio line, leaving the device turned off.
func (output *GpioOutput) Close() error {
	output.mu.Lock()
	defer output.mu.Unlock()
	_ = output.set(false)
	return output.line.Close()
}
