package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// EnvVar names the environment variable holding the debug log path.
const EnvVar = "WEFT_DEBUG"

var (
	mu      sync.Mutex
	logFile *os.File
	tried   bool
)

// Init opens path for appending debug output, replacing any previously
// opened log file.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked(path)
}

// initLocked does the actual init work. Caller must hold mu.
func initLocked(path string) error {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "create debug log directory")
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrap(err, "open debug log")
	}
	logFile = f
	tried = true
	return nil
}

// Enabled reports whether messages are currently written anywhere.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	ensureLocked()
	return logFile != nil
}

// ensureLocked lazily opens the file named by WEFT_DEBUG once.
func ensureLocked() {
	if tried {
		return
	}
	tried = true
	if path := os.Getenv(EnvVar); path != "" {
		// A bad path leaves logging disabled.
		_ = initLocked(path)
	}
}

// Close closes the debug log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Log writes a message to the debug log with a timestamp.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	ensureLocked()
	if logFile == nil {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(logFile, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
}
