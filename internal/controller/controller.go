package controller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/blink2go/internal/configuration"
	"github.com/markusressel/blink2go/internal/curves"
	"github.com/markusressel/blink2go/internal/outputs"
	"github.com/markusressel/blink2go/internal/pipeline"
	"github.com/markusressel/blink2go/internal/ui"
	"github.com/markusressel/blink2go/internal/util"
	"github.com/oklog/run"
)

const (
	// capacity of the filtered value queue used in threshold mode
	thresholdQueueCapacity = 64

	periodWindowSize = 10
)

// OutputController consumes the filtered values of one sensor and
// drives a single output device. In blink mode it toggles the output at
// a rate derived from a period curve; in threshold mode it applies an
// absolute on/off state. The controller is the exclusive owner of the
// output state while running.
type OutputController interface {
	Run(ctx context.Context) error

	GetId() string

	// ValueSink returns the sink a sampler should publish the filtered
	// values for this controller to.
	ValueSink() pipeline.Sink[int]

	// LastPeriod returns the most recently applied blink period
	LastPeriod() time.Duration
	// AvgPeriod returns the rolling average of recently applied blink periods
	AvgPeriod() float64
	// ToggleCount returns the number of toggles performed since startup
	ToggleCount() uint64
}

type outputController struct {
	output    outputs.Output
	curve     curves.PeriodCurve
	mode      string
	threshold int

	values  pipeline.Source[int]
	sink    pipeline.Sink[int]
	periods *pipeline.Signal[time.Duration]

	periodWindow *rolling.PointPolicy
	lastPeriod   time.Duration
	toggleCount  atomic.Uint64

	mu sync.Mutex
}

// NewOutputController creates a controller for the given output. The
// curve may be nil for threshold mode outputs.
func NewOutputController(
	output outputs.Output,
	curve curves.PeriodCurve,
	threshold int,
) OutputController {
	mode := output.GetMode()

	controller := &outputController{
		output:       output,
		curve:        curve,
		mode:         mode,
		threshold:    threshold,
		periods:      pipeline.NewSignal[time.Duration](),
		periodWindow: util.CreateRollingWindow(periodWindowSize),
	}

	if mode == configuration.ModeThreshold {
		// threshold mode consumes every filtered value in order
		queue := pipeline.NewQueue[int](thresholdQueueCapacity)
		controller.values = queue
		controller.sink = queue
	} else {
		// blink mode only ever cares about the most recent value
		signal := pipeline.NewSignal[int]()
		controller.values = signal
		controller.sink = signal
	}

	return controller
}

func (c *outputController) GetId() string {
	return c.output.GetId()
}

func (c *outputController) ValueSink() pipeline.Sink[int] {
	return c.sink
}

func (c *outputController) Run(ctx context.Context) error {
	ui.Info("Starting controller for output '%s' (mode: %s)", c.GetId(), c.mode)

	// defined initial state: off
	if err := c.output.Set(false); err != nil {
		ui.Warning("Cannot initialize output %s: %v", c.GetId(), err)
	}

	if c.mode == configuration.ModeThreshold {
		return c.thresholdLoop(ctx)
	}

	var g run.Group
	{
		// === period mapping
		g.Add(func() error {
			return c.mapperLoop(ctx)
		}, func(err error) {
			if err != nil {
				ui.Warning("Error mapping values for output %s: %v", c.GetId(), err)
			}
		})
	}
	{
		// === blinking
		g.Add(func() error {
			return c.blinkLoop(ctx)
		}, func(err error) {
			if err != nil {
				ui.Warning("Error blinking output %s: %v", c.GetId(), err)
			}
		})
	}

	return g.Run()
}

// mapperLoop waits for filtered values, evaluates the period curve and
// publishes the resulting period. A slow blink loop skips intermediate
// periods entirely, only the most recent one is ever applied.
func (c *outputController) mapperLoop(ctx context.Context) error {
	for {
		value, err := c.values.Wait(ctx)
		if err != nil {
			return nil
		}

		period, err := c.curve.Evaluate(value)
		if err != nil {
			ui.Error("Error evaluating curve %s: %v", c.curve.GetId(), err)
			continue
		}

		ui.Debug("Publishing period for output %s: %v", c.GetId(), period)
		c.periods.Offer(period)
	}
}

// blinkLoop waits for a period, toggles the output and then sleeps for
// exactly that period before accepting the next one.
func (c *outputController) blinkLoop(ctx context.Context) error {
	for {
		period, err := c.periods.Wait(ctx)
		if err != nil {
			return nil
		}

		c.setLastPeriod(period)
		c.toggle()

		timer := time.NewTimer(period)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// thresholdLoop applies an absolute on/off state for every filtered
// value: on when the value exceeds the threshold, off otherwise.
func (c *outputController) thresholdLoop(ctx context.Context) error {
	for {
		value, err := c.values.Wait(ctx)
		if err != nil {
			return nil
		}

		on := value > c.threshold
		ui.Debug("Setting output %s to %v (value: %d, threshold: %d)", c.GetId(), on, value, c.threshold)
		if err := c.output.Set(on); err != nil {
			// a faulty device must not stop the controller
			ui.Warning("Error setting output %s: %v", c.GetId(), err)
		}
	}
}

func (c *outputController) toggle() {
	state, err := c.output.Toggle()
	if err != nil {
		// skip this cycle, try again on the next period
		ui.Warning("Error toggling output %s: %v", c.GetId(), err)
		return
	}
	c.toggleCount.Add(1)
	ui.Debug("Toggled output %s: %v", c.GetId(), state)
}

func (c *outputController) setLastPeriod(period time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastPeriod = period
	c.periodWindow.Append(float64(period.Milliseconds()))
}

func (c *outputController) LastPeriod() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPeriod
}

func (c *outputController) AvgPeriod() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return util.GetWindowAvg(c.periodWindow)
}

func (c *outputController) ToggleCount() uint64 {
	return c.toggleCount.Load()
}
