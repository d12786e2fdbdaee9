package statistics

import (
	"github.com/markusressel/blink2go/internal/controller"
	"github.com/markusressel/blink2go/internal/outputs"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemOutput = "output"

type OutputCollector struct {
	outputs     []outputs.Output
	controllers []controller.OutputController

	state       *prometheus.Desc
	avgPeriod   *prometheus.Desc
	toggleCount *prometheus.Desc
}

func NewOutputCollector(
	outputs []outputs.Output,
	controllers []controller.OutputController,
) *OutputCollector {
	return &OutputCollector{
		outputs:     outputs,
		controllers: controllers,
		state: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemOutput, "state"),
			"Current on/off state of the output",
			[]string{"id"}, nil,
		),
		avgPeriod: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemOutput, "avg_period_millis"),
			"Rolling average of recently applied blink periods",
			[]string{"id"}, nil,
		),
		toggleCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemOutput, "toggle_count"),
			"Number of toggles performed since startup",
			[]string{"id"}, nil,
		),
	}
}

func (collector *OutputCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.state
	ch <- collector.avgPeriod
	ch <- collector.toggleCount
}

// Collect implements required collect function for all prometheus collectors
func (collector *OutputCollector) Collect(ch chan<- prometheus.Metric) {
	for _, output := range collector.outputs {
		state := 0.0
		if output.GetState() {
			state = 1.0
		}
		ch <- prometheus.MustNewConstMetric(collector.state, prometheus.GaugeValue, state, output.GetId())
	}

	for _, c := range collector.controllers {
		ch <- prometheus.MustNewConstMetric(collector.avgPeriod, prometheus.GaugeValue, c.AvgPeriod(), c.GetId())
		ch <- prometheus.MustNewConstMetric(collector.toggleCount, prometheus.CounterValue, float64(c.ToggleCount()), c.GetId())
	}
}
