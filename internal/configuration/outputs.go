package configuration

const (
	// ModeBlink toggles the output at a rate defined by a period curve.
	ModeBlink = "blink"
	// ModeThreshold sets the output to an absolute on/off state based on
	// a fixed threshold.
	ModeThreshold = "threshold"
)

type OutputConfig struct {
	ID string `json:"id"`
	// Mode selects the consumer policy for this output, one of
	// ModeBlink (default) or ModeThreshold.
	Mode string `json:"mode"`
	// Curve is the id of the period curve driving this output (blink mode).
	Curve string `json:"curve,omitempty"`
	// Sensor is the id of the sensor driving this output (threshold mode).
	Sensor string `json:"sensor,omitempty"`
	// Threshold is the filtered value above which the output is turned
	// on (threshold mode). When omitted, half of MaxSampleValue is used.
	Threshold *int `json:"threshold,omitempty"`

	Gpio *GpioOutputConfig `json:"gpio,omitempty"`
	File *FileOutputConfig `json:"file,omitempty"`
	Cmd  *CmdOutputConfig  `json:"cmd,omitempty"`
}

type GpioOutputConfig struct {
	// Chip is the gpio character device name, f.ex. "gpiochip0".
	Chip string `json:"chip"`
	// Line is the offset of the gpio line the output device is wired to.
	Line int `json:"line"`
}

type FileOutputConfig struct {
	Path string `json:"path"`
}

type CmdOutputConfig struct {
	On  *ExecConfig `json:"on"`
	Off *ExecConfig `json:"off"`
}

type ExecConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}
