package statistics

import (
	"github.com/markusressel/blink2go/internal/curves"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemCurve = "curve"

type CurveCollector struct {
	curves []curves.PeriodCurve
	period *prometheus.Desc
}

func NewCurveCollector(curves []curves.PeriodCurve) *CurveCollector {
	return &CurveCollector{
		curves: curves,
		period: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemCurve, "period_seconds"),
			"Most recently computed period of the curve",
			[]string{"id"}, nil,
		),
	}
}

func (collector *CurveCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.period
}

// Collect implements required collect function for all prometheus collectors
func (collector *CurveCollector) Collect(ch chan<- prometheus.Metric) {
	for _, curve := range collector.curves {
		curveId := curve.GetId()
		period := curve.CurrentPeriod()
		ch <- prometheus.MustNewConstMetric(collector.period, prometheus.GaugeValue, period.Seconds(), curveId)
	}
}
