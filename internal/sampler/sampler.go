package sampler

import (
	"context"
	"time"

	"github.com/markusressel/blink2go/internal/pipeline"
	"github.com/markusressel/blink2go/internal/sensors"
	"github.com/markusressel/blink2go/internal/ui"
	"github.com/markusressel/blink2go/internal/util"
)

// Sampler reads raw values from a single sensor at a fixed rate,
// reduces each full window of samples to its average and publishes the
// result to all subscribed sinks.
type Sampler interface {
	Run(ctx context.Context) error

	// Subscribe registers a sink for filtered values. Must be called
	// before Run.
	Subscribe(sink pipeline.Sink[int])
}

type sampler struct {
	sensor      sensors.Sensor
	pollingRate time.Duration
	windowSize  int
	maxValue    int

	ring     *sampleRing
	lastGood int
	sinks    []pipeline.Sink[int]
}

func NewSampler(
	sensor sensors.Sensor,
	pollingRate time.Duration,
	windowSize int,
	maxValue int,
) Sampler {
	return &sampler{
		sensor:      sensor,
		pollingRate: pollingRate,
		windowSize:  windowSize,
		maxValue:    maxValue,
		ring:        newSampleRing(windowSize),
	}
}

func (s *sampler) Subscribe(sink pipeline.Sink[int]) {
	s.sinks = append(s.sinks, sink)
}

func (s *sampler) Run(ctx context.Context) error {
	tick := time.Tick(s.pollingRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			s.sampleOnce()
		}
	}
}

// sampleOnce reads one raw value and appends it to the ring. A failed
// read is logged and the previous good sample is reused for that slot,
// so the publish cadence of one filtered value per full window survives
// individual sensor faults.
func (s *sampler) sampleOnce() {
	sample := s.lastGood

	value, err := s.sensor.GetValue()
	if err != nil {
		ui.Warning("Error reading sensor %s, reusing last sample: %v", s.sensor.GetId(), err)
	} else {
		sample = util.CoerceInt(int(value), 0, s.maxValue)
	}
	s.lastGood = sample

	ui.Debug("Sampled sensor %s: %d", s.sensor.GetId(), sample)

	if !s.ring.add(sample) {
		return
	}

	avg := s.ring.average()
	s.sensor.SetMovingAvg(util.UpdateSimpleMovingAvg(s.sensor.GetMovingAvg(), s.windowSize, float64(avg)))
	ui.Debug("Publishing filtered value of sensor %s: %d", s.sensor.GetId(), avg)

	for _, sink := range s.sinks {
		sink.Offer(avg)
	}
}
