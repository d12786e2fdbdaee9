package outputs

import (
	"fmt"

	"github.com/markusressel/blink2go/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	OutputMap = cmap.New[Output]()
)

// Output is a binary output device, f.ex. an LED. The state of an
// output is owned by exactly one controller at runtime; Set and Toggle
// are safe for serialized access through that owner.
type Output interface {
	GetId() string

	GetConfig() configuration.OutputConfig

	// Set applies an absolute on/off state to the device
	Set(on bool) error

	// Toggle inverts the current state of the device and
	// returns the new state
	Toggle() (bool, error)

	// GetState returns the last applied state of the device
	GetState() bool

	// GetCurveId returns the id of the period curve associated with this output
	GetCurveId() string

	// GetMode returns the consumer policy of this output,
	// one of ModeBlink or ModeThreshold
	GetMode() string
}

func NewOutput(config configuration.OutputConfig) (Output, error) {
	if config.Gpio != nil {
		return NewGpioOutput(config)
	}

	if config.File != nil {
		return &FileOutput{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdOutput{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching output type for output: %s", config.ID)
}

// GetOutput returns the output with the given id from the registry
func GetOutput(id string) (Output, error) {
	output, exists := OutputMap.Get(id)
	if !exists {
		return nil, fmt.Errorf("no output with id found: %s", id)
	}
	return output, nil
}
