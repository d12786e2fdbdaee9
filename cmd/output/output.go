package output

import (
	"fmt"

	"github.com/markusressel/blink2go/internal/configuration"
	"github.com/markusressel/blink2go/internal/outputs"
	"github.com/markusressel/blink2go/internal/ui"
	"github.com/spf13/cobra"
)

var outputId string

var Command = &cobra.Command{
	Use:              "output",
	Short:            "Output related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&outputId,
		"id", "i",
		"",
		"Output ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

func getOutput(id string) (outputs.Output, error) {
	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}

	for _, config := range configuration.CurrentConfig.Outputs {
		if config.ID == id {
			return outputs.NewOutput(config)
		}
	}

	return nil, fmt.Errorf("no output with id found: %s", id)
}
