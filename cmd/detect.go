package cmd

import (
	"bytes"
	"strconv"

	"github.com/markusressel/blink2go/cmd/global"
	"github.com/markusressel/blink2go/internal/hwmon"
	"github.com/markusressel/blink2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect analog inputs",
	Long:  `Detects all voltage inputs usable as analog sample sources and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		chips := hwmon.GetChips()

		tableConfig := &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		}

		for _, chip := range chips {
			if len(chip.Name) <= 0 || len(chip.Sensors) <= 0 {
				continue
			}

			ui.Printfln("> %s", chip.Name)

			var sensorRows [][]string
			for _, sensor := range chip.Sensors {
				value, err := sensor.GetValue()
				valueText := "N/A"
				if err == nil {
					valueText = strconv.Itoa(int(value))
				}

				sensorRows = append(sensorRows, []string{
					"", strconv.Itoa(sensor.Index), sensor.Label, valueText,
				})
			}
			sensorHeaders := []string{"Inputs ", "Index", "Label", "Value"}

			sensorTable := table.Table{
				Headers: sensorHeaders,
				Rows:    sensorRows,
			}

			var buf bytes.Buffer
			if err := sensorTable.WriteTable(&buf, tableConfig); err != nil {
				ui.Fatal("Error printing table: %v", err)
			}
			ui.Printfln(buf.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
