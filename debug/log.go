package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

var (
	file    *os.File
	mu      sync.Mutex
	enabled atomic.Bool
)

// Enable starts debug logging to ~/.config/modlive/debug.log
func Enable() error {
	mu.Lock()
	defer mu.Unlock()

	if enabled.Load() {
		return nil
	}

	homeDir, _ := os.UserHomeDir()
	dir := filepath.Join(homeDir, ".config", "modlive")
	os.MkdirAll(dir, 0755)

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	enabled.Store(true)

	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(file, "[%s] %-10s %s\n", ts, "debug", "=== Debug logging started ===")
	file.Sync()

	return nil
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	enabled.Store(false)
	if file != nil {
		file.Close()
		file = nil
	}
}

// Log writes a message to the debug log. When logging is disabled
// this returns before formatting anything, so calls on the audio row
// path cost one atomic load.
func Log(category, format string, args ...any) {
	if !enabled.Load() {
		return
	}

	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return
	}

	ts := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(file, "[%s] %-10s %s\n", ts, category, msg)
	file.Sync() // flush immediately so we see logs even on crash
}

// LogEvery logs only every N calls (use for high-frequency events
// like row callbacks)
var counters sync.Map

func LogEvery(n int, category, format string, args ...any) {
	if !enabled.Load() {
		return
	}

	key := category + format
	var count int
	if v, ok := counters.Load(key); ok {
		count = v.(int)
	}
	count++
	counters.Store(key, count)

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
