package output

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle the output state",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := getOutput(outputId)
		if err != nil {
			return err
		}

		state, err := output.Toggle()
		if err != nil {
			return err
		}

		fmt.Printf("%v", state)
		return nil
	},
}

func init() {
	Command.AddCommand(toggleCmd)
}
