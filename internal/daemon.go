package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/markusressel/blink2go/internal/api"
	"github.com/markusressel/blink2go/internal/configuration"
	"github.com/markusressel/blink2go/internal/controller"
	"github.com/markusressel/blink2go/internal/curves"
	"github.com/markusressel/blink2go/internal/hwmon"
	"github.com/markusressel/blink2go/internal/outputs"
	"github.com/markusressel/blink2go/internal/sampler"
	"github.com/markusressel/blink2go/internal/sensors"
	"github.com/markusressel/blink2go/internal/statistics"
	"github.com/markusressel/blink2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	InitializeObjects()

	samplers, controllers, err := wirePipeline()
	if err != nil {
		ui.Fatal("Unable to wire the sampling pipeline: %v", err)
	}

	registerCollectors(controllers)

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		if configuration.CurrentConfig.Statistics.Enabled {
			// === Prometheus Exporter
			g.Add(func() error {
				port := configuration.CurrentConfig.Statistics.Port
				if port <= 0 || port >= 65535 {
					port = 9201
				}
				addr := fmt.Sprintf(":%d", port)
				handler := promhttp.Handler()
				mux := http.NewServeMux()
				mux.Handle("/metrics", handler)
				server := &http.Server{Addr: addr, Handler: mux}

				go func() {
					<-ctx.Done()
					ui.Info("Stopping statistics server...")
					timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer timeoutCancel()
					_ = server.Shutdown(timeoutCtx)
				}()

				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		if configuration.CurrentConfig.Api.Enabled {
			// === REST Api
			g.Add(func() error {
				restService := api.CreateRestService()
				addr := fmt.Sprintf("%s:%d",
					configuration.CurrentConfig.Api.Host,
					configuration.CurrentConfig.Api.Port,
				)

				go func() {
					<-ctx.Done()
					ui.Info("Stopping REST api...")
					timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer timeoutCancel()
					_ = restService.Shutdown(timeoutCtx)
				}()

				if err := restService.Start(addr); err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start REST api endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping REST api: " + err.Error())
				} else {
					ui.Info("REST api stopped.")
				}
			})
		}
	}
	{
		// === samplers
		for sensorId, s := range samplers {
			id := sensorId
			samplerInstance := s

			g.Add(func() error {
				err := samplerInstance.Run(ctx)
				ui.Info("Sampler for sensor %s stopped.", id)
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error sampling sensor %s: %v", id, err)
				}
			})
		}
	}
	{
		// === output controllers
		for _, c := range controllers {
			outputController := c

			g.Add(func() error {
				err := outputController.Run(ctx)
				ui.Info("Controller for output %s stopped.", outputController.GetId())
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error controlling output %s: %v", outputController.GetId(), err)
				}
			})
		}

		if len(controllers) == 0 {
			ui.Fatal("No valid output configurations, exiting.")
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// InitializeObjects creates the sensor, curve and output registries
// from the current configuration.
func InitializeObjects() {
	var chips []*hwmon.HwMonController
	if containsHwMonSensors() {
		chips = hwmon.GetChips()
	}

	for _, config := range configuration.CurrentConfig.Sensors {
		if config.HwMon != nil {
			found := false
			for _, c := range chips {
				matched, err := regexp.MatchString("(?i)"+config.HwMon.Platform, c.Platform)
				if err != nil {
					ui.Fatal("Failed to match platform regex of %s (%s) against chip platform %s", config.ID, config.HwMon.Platform, c.Platform)
				}
				if matched && len(c.Sensors) >= config.HwMon.Index {
					found = true
					config.HwMon.VoltageInput = c.Sensors[config.HwMon.Index-1].Input
				}
			}
			if !found {
				ui.Fatal("Couldn't find hwmon device with platform '%s' for sensor: %s. Run 'blink2go detect' again and correct any mistake.", config.HwMon.Platform, config.ID)
			}
		}

		sensor, err := sensors.NewSensor(config)
		if err != nil {
			ui.Fatal("Unable to process sensor configuration: %s", config.ID)
		}

		currentValue, err := sensor.GetValue()
		if err != nil {
			ui.Warning("Error reading sensor %s: %v", config.ID, err)
		}
		sensor.SetMovingAvg(currentValue)

		sensors.SensorMap.Set(config.ID, sensor)
	}

	for _, config := range configuration.CurrentConfig.Curves {
		curve, err := curves.NewPeriodCurve(config, configuration.CurrentConfig.MaxSampleValue)
		if err != nil {
			ui.Fatal("Unable to process curve configuration: %s", config.ID)
		}
		curves.PeriodCurveMap.Set(config.ID, curve)
	}

	for _, config := range configuration.CurrentConfig.Outputs {
		output, err := outputs.NewOutput(config)
		if err != nil {
			ui.Fatal("Unable to process output configuration: %s: %v", config.ID, err)
		}
		outputs.OutputMap.Set(config.ID, output)
	}
}

// wirePipeline connects one sampler per used sensor to the controllers
// of all outputs driven by that sensor.
func wirePipeline() (map[string]sampler.Sampler, []controller.OutputController, error) {
	config := &configuration.CurrentConfig

	samplers := map[string]sampler.Sampler{}
	var controllers []controller.OutputController

	for _, outputConfig := range config.Outputs {
		output, err := outputs.GetOutput(outputConfig.ID)
		if err != nil {
			return nil, nil, err
		}

		var curve curves.PeriodCurve
		sensorId := outputConfig.Sensor
		if output.GetMode() != configuration.ModeThreshold {
			curve, err = curves.GetPeriodCurve(outputConfig.Curve)
			if err != nil {
				return nil, nil, err
			}
			sensorId, err = configuration.ResolveCurveSensor(config, outputConfig.Curve)
			if err != nil {
				return nil, nil, err
			}
		}

		threshold := resolveThreshold(outputConfig, config.MaxSampleValue)

		outputController := controller.NewOutputController(output, curve, threshold)
		controllers = append(controllers, outputController)

		s, exists := samplers[sensorId]
		if !exists {
			sensor, err := sensors.GetSensor(sensorId)
			if err != nil {
				return nil, nil, err
			}
			s = sampler.NewSampler(
				sensor,
				config.SamplerPollingRate,
				config.SampleWindowSize,
				config.MaxSampleValue,
			)
			samplers[sensorId] = s
		}
		s.Subscribe(outputController.ValueSink())
	}

	return samplers, controllers, nil
}

// resolveThreshold returns the configured threshold of an output, or
// half of the sample range when the configuration does not set one.
// An explicit threshold of 0 is honored as-is.
func resolveThreshold(config configuration.OutputConfig, maxSampleValue int) int {
	if config.Threshold != nil {
		return *config.Threshold
	}
	return maxSampleValue / 2
}

func registerCollectors(controllers []controller.OutputController) {
	var sensorList []sensors.Sensor
	for _, sensor := range sensors.SensorMap.Items() {
		sensorList = append(sensorList, sensor)
	}
	statistics.Register(statistics.NewSensorCollector(sensorList))

	var curveList []curves.PeriodCurve
	for _, curve := range curves.PeriodCurveMap.Items() {
		curveList = append(curveList, curve)
	}
	statistics.Register(statistics.NewCurveCollector(curveList))

	var outputList []outputs.Output
	for _, output := range outputs.OutputMap.Items() {
		outputList = append(outputList, output)
	}
	statistics.Register(statistics.NewOutputCollector(outputList, controllers))
}

func containsHwMonSensors() bool {
	for _, sensorConfig := range configuration.CurrentConfig.Sensors {
		if sensorConfig.HwMon != nil {
			return true
		}
	}
	return false
}
