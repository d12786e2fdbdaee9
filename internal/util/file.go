package util

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/natefinch/atomic"
)

// CheckFilePermissionsForExecution checks whether the given filePath owner, group and permissions
// are safe enough to execute the file as part of the daemon.
func CheckFilePermissionsForExecution(filePath string) (bool, error) {
	file, err := filepath.EvalSymlinks(filePath)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(file)
	if os.IsNotExist(err) {
		return false, errors.New("file not found")
	}

	stat := info.Sys().(*syscall.Stat_t)
	if stat.Uid != 0 {
		return false, errors.New("owner is not root")
	}

	if stat.Gid != 0 {
		mode := info.Mode()
		groupWrite := mode & (os.FileMode(0o020))
		if groupWrite != 0 {
			return false, errors.New("group is not root but has write permission")
		}
	}

	otherWrite := info.Mode() & (os.FileMode(0o002))
	if otherWrite != 0 {
		return false, errors.New("others have write permission")
	}

	return true, nil
}

// ResolvePath expands a leading "~" to the home directory of the current
// user and evaluates symlinks where possible.
func ResolvePath(path string) string {
	if strings.HasPrefix(path, "~") {
		currentUser, err := user.Current()
		if err == nil {
			path = filepath.Join(currentUser.HomeDir, path[1:])
		}
	}

	evaluated, err := filepath.EvalSymlinks(path)
	if len(evaluated) > 0 && err == nil {
		return evaluated
	}
	return path
}

func ReadIntFromFile(path string) (value int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return -1, err
	}
	text := string(data)
	if len(text) <= 0 {
		return -1, fmt.Errorf("file is empty: %s", path)
	}
	text = strings.TrimSpace(text)
	value, err = strconv.Atoi(text)
	return value, err
}

// WriteIntToFile writes a single integer to the given file path
func WriteIntToFile(value int, path string) error {
	valueAsString := fmt.Sprintf("%d", value)
	return os.WriteFile(ResolvePath(path), []byte(valueAsString), 0644)
}

// WriteIntToFileAtomic writes a single integer to the given file path,
// replacing the file contents atomically
func WriteIntToFileAtomic(value int, path string) error {
	valueAsString := fmt.Sprintf("%d", value)
	valueReader := strings.NewReader(valueAsString)
	return atomic.WriteFile(ResolvePath(path), valueReader)
}
