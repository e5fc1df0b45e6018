package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	file    *os.File
	logger  zerolog.Logger = zerolog.Nop()
	mu      sync.Mutex
	enabled bool
)

// DefaultPath is ~/.config/go-padloop/debug.log
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "go-padloop", "debug.log")
}

// Enable starts debug logging to path (truncated). The TUI owns stdout, so
// logs only ever go to a file.
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        f,
		NoColor:    true,
		TimeFormat: "15:04:05.000",
	}).With().Timestamp().Logger()
	enabled = true

	logger.Debug().Str("cat", "debug").Msg("=== Debug logging started ===")
	return nil
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	logger = zerolog.Nop()
	enabled = false
}

// Enabled reports whether logs are being written
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Log writes a message to the debug log
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}

	logger.Debug().Str("cat", category).Msg(fmt.Sprintf(format, args...))
	file.Sync() // flush immediately so we see logs even on crash
}

// Error logs err under category
func Error(category string, err error, msg string) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || err == nil {
		return
	}

	logger.Error().Str("cat", category).Err(err).Msg(msg)
	file.Sync()
}

// LogEvery logs only every N calls (use for high-frequency events)
var counters = make(map[string]int)

func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
