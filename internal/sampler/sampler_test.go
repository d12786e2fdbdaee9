package sampler

import (
	"errors"
	"testing"
	"time"

	"github.com/markusressel/blink2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

type MockSensor struct {
	ID        string
	Value     float64
	Err       error
	MovingAvg float64
}

func (sensor *MockSensor) GetId() string {
	return sensor.ID
}

func (sensor *MockSensor) GetConfig() configuration.SensorConfig {
	return configuration.SensorConfig{ID: sensor.ID}
}

func (sensor *MockSensor) GetValue() (float64, error) {
	return sensor.Value, sensor.Err
}

func (sensor *MockSensor) GetMovingAvg() (avg float64) {
	return sensor.MovingAvg
}

func (sensor *MockSensor) SetMovingAvg(avg float64) {
	sensor.MovingAvg = avg
}

type recordingSink struct {
	values []int
}

func (sink *recordingSink) Offer(value int) {
	sink.values = append(sink.values, value)
}

func TestSamplerPublishesOncePerFullWindow(t *testing.T) {
	// GIVEN
	windowSize := 4
	s := &MockSensor{ID: "sensor", Value: 100}
	sink := &recordingSink{}

	smp := NewSampler(s, time.Millisecond, windowSize, 4095).(*sampler)
	smp.Subscribe(sink)

	// WHEN
	for i := 0; i < windowSize*3; i++ {
		smp.sampleOnce()
	}

	// THEN
	assert.Equal(t, []int{100, 100, 100}, sink.values)
}

func TestSamplerNoPublishBeforeWindowIsFull(t *testing.T) {
	// GIVEN
	windowSize := 10
	s := &MockSensor{ID: "sensor", Value: 2000}
	sink := &recordingSink{}

	smp := NewSampler(s, time.Millisecond, windowSize, 4095).(*sampler)
	smp.Subscribe(sink)

	// WHEN
	for i := 0; i < windowSize-1; i++ {
		smp.sampleOnce()
	}

	// THEN
	assert.Empty(t, sink.values)
}

func TestSamplerClampsOutOfRangeSamples(t *testing.T) {
	// GIVEN
	s := &MockSensor{ID: "sensor", Value: 9000}
	sink := &recordingSink{}

	smp := NewSampler(s, time.Millisecond, 2, 4095).(*sampler)
	smp.Subscribe(sink)

	// WHEN
	smp.sampleOnce()
	smp.sampleOnce()

	// THEN
	assert.Equal(t, []int{4095}, sink.values)
}

func TestSamplerReusesLastGoodSampleOnReadError(t *testing.T) {
	// GIVEN
	windowSize := 4
	s := &MockSensor{ID: "sensor", Value: 200}
	sink := &recordingSink{}

	smp := NewSampler(s, time.Millisecond, windowSize, 4095).(*sampler)
	smp.Subscribe(sink)

	// WHEN
	smp.sampleOnce()
	smp.sampleOnce()
	s.Err = errors.New("read failed")
	smp.sampleOnce()
	s.Err = nil
	smp.sampleOnce()

	// THEN
	// the failed read is backfilled with the last good sample, so the
	// publish cadence and the average are unaffected
	assert.Equal(t, []int{200}, sink.values)
}

func TestSamplerPublishesToAllSinks(t *testing.T) {
	// GIVEN
	s := &MockSensor{ID: "sensor", Value: 50}
	first := &recordingSink{}
	second := &recordingSink{}

	smp := NewSampler(s, time.Millisecond, 2, 4095).(*sampler)
	smp.Subscribe(first)
	smp.Subscribe(second)

	// WHEN
	smp.sampleOnce()
	smp.sampleOnce()

	// THEN
	assert.Equal(t, []int{50}, first.values)
	assert.Equal(t, []int{50}, second.values)
}

func TestSamplerUpdatesSensorMovingAvg(t *testing.T) {
	// GIVEN
	s := &MockSensor{ID: "sensor", Value: 1000, MovingAvg: 1000}

	smp := NewSampler(s, time.Millisecond, 2, 4095).(*sampler)

	// WHEN
	s.Value = 2000
	smp.sampleOnce()
	smp.sampleOnce()

	// THEN
	assert.Greater(t, s.GetMovingAvg(), 1000.0)
}
