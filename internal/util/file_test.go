package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadIntFromFile(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "value")
	err := os.WriteFile(filePath, []byte("1234\n"), 0644)
	assert.NoError(t, err)

	// WHEN
	value, err := ReadIntFromFile(filePath)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1234, value)
}

func TestReadIntFromEmptyFile(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "empty")
	err := os.WriteFile(filePath, []byte(""), 0644)
	assert.NoError(t, err)

	// WHEN
	_, err = ReadIntFromFile(filePath)

	// THEN
	assert.Error(t, err)
}

func TestReadIntFromMissingFile(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "does_not_exist")

	// WHEN
	value, err := ReadIntFromFile(filePath)

	// THEN
	assert.Error(t, err)
	assert.Equal(t, -1, value)
}

func TestWriteIntToFile(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "value")

	// WHEN
	err := WriteIntToFile(42, filePath)

	// THEN
	assert.NoError(t, err)
	value, err := ReadIntFromFile(filePath)
	assert.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestWriteIntToFileAtomic(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "value")

	// WHEN
	err := WriteIntToFileAtomic(1, filePath)
	assert.NoError(t, err)
	err = WriteIntToFileAtomic(0, filePath)

	// THEN
	assert.NoError(t, err)
	value, err := ReadIntFromFile(filePath)
	assert.NoError(t, err)
	assert.Equal(t, 0, value)
}

func TestResolvePathPassesThroughRegularPath(t *testing.T) {
	// GIVEN
	filePath := "/tmp/some/path"

	// WHEN
	resolved := ResolvePath(filePath)

	// THEN
	assert.Equal(t, filePath, resolved)
}
