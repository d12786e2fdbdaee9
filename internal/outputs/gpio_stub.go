//go:build !linux

package outputs

import (
	"fmt"

	"github.com/markusressel/blink2go/internal/configuration"
)

// NewGpioOutput is only supported on linux.
func NewGpioOutput(config configuration.OutputConfig) (Output, error) {
	return nil, fmt.Errorf("output %s: gpio outputs are only supported on linux", config.ID)
}
