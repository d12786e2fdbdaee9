package output

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the output to an absolute on/off state",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := strconv.ParseBool(args[0])
		if err != nil {
			return fmt.Errorf("invalid state '%s', use one of: true | false | 1 | 0", args[0])
		}

		output, err := getOutput(outputId)
		if err != nil {
			return err
		}

		return output.Set(on)
	},
}

func init() {
	Command.AddCommand(setCmd)
}
