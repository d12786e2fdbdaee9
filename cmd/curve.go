package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/blink2go/cmd/global"
	"github.com/markusressel/blink2go/internal/configuration"
	"github.com/markusressel/blink2go/internal/curves"
	"github.com/markusressel/blink2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

const curveGraphSamples = 100

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the period curve(s) to console",
	Run: func(cmd *cobra.Command, args []string) {
		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		err := configuration.Validate(configPath)
		if err != nil {
			ui.FatalWithoutStacktrace("Config validation error: %v", err)
		}

		maxSampleValue := configuration.CurrentConfig.MaxSampleValue

		var curveList []curves.PeriodCurve
		for _, config := range configuration.CurrentConfig.Curves {
			curve, err := curves.NewPeriodCurve(config, maxSampleValue)
			if err != nil {
				ui.Fatal("Unable to process curve configuration: %s", config.ID)
			}
			curves.PeriodCurveMap.Set(config.ID, curve)
			curveList = append(curveList, curve)
		}

		for idx, curve := range curveList {
			if idx > 0 {
				ui.Printfln("")
				ui.Printfln("")
			}
			printCurve(curve, maxSampleValue)
		}
	},
}

func printCurve(curve curves.PeriodCurve, maxSampleValue int) {
	ui.Printfln(curve.GetId())

	periodAtMin, err := curve.Evaluate(0)
	if err != nil {
		ui.Fatal("Error evaluating curve %s: %v", curve.GetId(), err)
	}
	periodAtMax, err := curve.Evaluate(maxSampleValue)
	if err != nil {
		ui.Fatal("Error evaluating curve %s: %v", curve.GetId(), err)
	}

	tab := table.Table{
		Headers: []string{"", ""},
		Rows: [][]string{
			{"Period at value 0", fmt.Sprintf("%v", periodAtMin)},
			{"Period at value " + fmt.Sprint(maxSampleValue), fmt.Sprintf("%v", periodAtMax)},
		},
	}
	var buf bytes.Buffer
	tableErr := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           !global.NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if tableErr != nil {
		ui.Fatal("Error printing table: %v", tableErr)
	}
	ui.Printfln(buf.String())

	values := make([]float64, 0, curveGraphSamples+1)
	for i := 0; i <= curveGraphSamples; i++ {
		sample := i * maxSampleValue / curveGraphSamples
		period, err := curve.Evaluate(sample)
		if err != nil {
			ui.Fatal("Error evaluating curve %s: %v", curve.GetId(), err)
		}
		values = append(values, float64(period/time.Millisecond))
	}

	caption := "Period (ms) / Value"
	graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
	ui.Printfln(graph)
}

func init() {
	rootCmd.AddCommand(curveCmd)
}
