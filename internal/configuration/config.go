package configuration

import (
	"os"
	"time"

	"github.com/markusressel/blink2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	// SamplerPollingRate is the time interval between two raw sensor readings.
	SamplerPollingRate time.Duration `json:"samplerPollingRate"`
	// SampleWindowSize is the number of raw readings that are reduced
	// into a single filtered value.
	SampleWindowSize int `json:"sampleWindowSize"`
	// MaxSampleValue is the upper bound (exclusive of overflow) of the
	// raw sample range, f.ex. 4095 for a 12-bit ADC.
	MaxSampleValue int `json:"maxSampleValue"`

	Sensors []SensorConfig `json:"sensors"`
	Curves  []CurveConfig  `json:"curves"`
	Outputs []OutputConfig `json:"outputs"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
}

var CurrentConfig Configuration

// InitConfig sets up the viper instance. Reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("blink2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/blink2go/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("SamplerPollingRate", 100*time.Millisecond)
	viper.SetDefault("SampleWindowSize", 10)
	viper.SetDefault("MaxSampleValue", 4095)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9201)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9202)

	viper.SetDefault("sensors", []SensorConfig{})
	viper.SetDefault("curves", []CurveConfig{})
	viper.SetDefault("outputs", []OutputConfig{})
}

// DetectConfigFile reads in the detected config file and returns its path.
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

// LoadConfig unmarshals the read configuration into CurrentConfig.
func LoadConfig() {
	err := viper.Unmarshal(
		&CurrentConfig,
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			curveStepsHookFunc(),
		)),
	)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
