package configuration

type SensorConfig struct {
	ID    string             `json:"id"`
	HwMon *HwMonSensorConfig `json:"hwMon,omitempty"`
	Iio   *IioSensorConfig   `json:"iio,omitempty"`
	File  *FileSensorConfig  `json:"file,omitempty"`
	Cmd   *CmdSensorConfig   `json:"cmd,omitempty"`
}

type HwMonSensorConfig struct {
	Platform string `json:"platform"`
	Index    int    `json:"index"`

	// VoltageInput is the sysfs path of the in*_input file of this
	// sensor, resolved at startup by matching Platform and Index
	// against the detected chips.
	VoltageInput string `json:"voltageInput,omitempty"`
}

type IioSensorConfig struct {
	// Device is the index N of the iio:deviceN sysfs entry
	Device int `json:"device"`
	// Channel is the index C of the in_voltageC_raw attribute
	Channel int `json:"channel"`
}

type FileSensorConfig struct {
	Path string `json:"path"`
}

type CmdSensorConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}
