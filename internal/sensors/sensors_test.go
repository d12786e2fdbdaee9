package sensors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/markusressel/blink2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func TestNewSensorFile(t *testing.T) {
	// GIVEN
	config := configuration.SensorConfig{
		ID: "sensor",
		File: &configuration.FileSensorConfig{
			Path: "/tmp/sensor",
		},
	}

	// WHEN
	sensor, err := NewSensor(config)

	// THEN
	assert.NoError(t, err)
	assert.IsType(t, &FileSensor{}, sensor)
	assert.Equal(t, "sensor", sensor.GetId())
}

func TestNewSensorHwMon(t *testing.T) {
	// GIVEN
	config := configuration.SensorConfig{
		ID: "sensor",
		HwMon: &configuration.HwMonSensorConfig{
			Platform: "platform",
			Index:    1,
		},
	}

	// WHEN
	sensor, err := NewSensor(config)

	// THEN
	assert.NoError(t, err)
	assert.IsType(t, &HwMonSensor{}, sensor)
}

func TestNewSensorIio(t *testing.T) {
	// GIVEN
	config := configuration.SensorConfig{
		ID: "sensor",
		Iio: &configuration.IioSensorConfig{
			Device:  0,
			Channel: 3,
		},
	}

	// WHEN
	sensor, err := NewSensor(config)

	// THEN
	assert.NoError(t, err)
	assert.IsType(t, &IioSensor{}, sensor)
	assert.Equal(t, "/sys/bus/iio/devices/iio:device0/in_voltage3_raw", sensor.(*IioSensor).Input)
}

func TestIioSensorGetValue(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "in_voltage0_raw")
	err := os.WriteFile(filePath, []byte("1337\n"), 0644)
	assert.NoError(t, err)

	sensor := &IioSensor{
		Input: filePath,
		Config: configuration.SensorConfig{
			ID: "sensor",
			Iio: &configuration.IioSensorConfig{
				Device:  0,
				Channel: 0,
			},
		},
	}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1337.0, value)
}

func TestNewSensorWithoutSubConfig(t *testing.T) {
	// GIVEN
	config := configuration.SensorConfig{
		ID: "sensor",
	}

	// WHEN
	_, err := NewSensor(config)

	// THEN
	assert.Error(t, err)
}

func TestFileSensorGetValue(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "sensor")
	err := os.WriteFile(filePath, []byte("2048\n"), 0644)
	assert.NoError(t, err)

	sensor := &FileSensor{
		Config: configuration.SensorConfig{
			ID: "sensor",
			File: &configuration.FileSensorConfig{
				Path: filePath,
			},
		},
	}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 2048.0, value)
}

func TestFileSensorGetValueMissingFile(t *testing.T) {
	// GIVEN
	sensor := &FileSensor{
		Config: configuration.SensorConfig{
			ID: "sensor",
			File: &configuration.FileSensorConfig{
				Path: filepath.Join(t.TempDir(), "does_not_exist"),
			},
		},
	}

	// WHEN
	_, err := sensor.GetValue()

	// THEN
	assert.Error(t, err)
}

func TestFileSensorMovingAvg(t *testing.T) {
	// GIVEN
	sensor := &FileSensor{
		Config: configuration.SensorConfig{ID: "sensor"},
	}

	// WHEN
	sensor.SetMovingAvg(1234.5)

	// THEN
	assert.Equal(t, 1234.5, sensor.GetMovingAvg())
}

func TestGetSensorFromRegistry(t *testing.T) {
	// GIVEN
	sensor := &FileSensor{
		Config: configuration.SensorConfig{ID: "registered"},
	}
	SensorMap.Set(sensor.GetId(), sensor)

	// WHEN
	result, err := GetSensor("registered")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, sensor, result)
}

func TestGetSensorUnknownId(t *testing.T) {
	// WHEN
	_, err := GetSensor("unknown")

	// THEN
	assert.Error(t, err)
}
