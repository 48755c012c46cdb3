// Package debuglog writes JSON-lines debug traces when --debug is set.
// Every function is a no-op until Init enables logging.
package debuglog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/javiermolinar/taqvim/internal/grid"
)

// DefaultPath is the fixed path for debug logs.
const DefaultPath = "taqvim-debug.log"

// Logger writes structured entries to a file.
type Logger struct {
	mu      sync.Mutex
	w       io.Writer
	closer  io.Closer
	enabled bool
	seq     int
}

var std = &Logger{}

// Init enables logging to path when enabled is true. An empty path means
// DefaultPath in the current directory.
func Init(enabled bool, path string) error {
	if !enabled {
		std = &Logger{}
		return nil
	}
	if path == "" {
		path = DefaultPath
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	std = &Logger{w: f, closer: f, enabled: true}
	std.log("DEBUG_START", map[string]any{
		"log_file": path,
		"time":     time.Now().Format(time.RFC3339),
	})
	return nil
}

// SetOutput enables logging to w. Used by tests.
func SetOutput(w io.Writer) {
	std = &Logger{w: w, enabled: w != nil}
}

// Enabled reports whether entries are being written.
func Enabled() bool {
	return std.enabled
}

// Close ends the log and closes the file.
func Close() {
	if !std.enabled {
		return
	}
	std.log("DEBUG_END", map[string]any{
		"time": time.Now().Format(time.RFC3339),
	})
	if std.closer != nil {
		_ = std.closer.Close()
	}
	std = &Logger{}
}

func (l *Logger) log(event string, data map[string]any) {
	if l == nil || !l.enabled || l.w == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	entry := map[string]any{
		"seq":   l.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(l.w, "%s\n", b)
}

// Log writes an arbitrary entry.
func Log(event string, data map[string]any) {
	std.log(event, data)
}

// LogKey logs a key press.
func LogKey(key string) {
	std.log("KEY", map[string]any{"key": key})
}

// LogBuild logs the shape of a layout and every rejected event.
func LogBuild(source string, l *grid.Layout) {
	if !std.enabled || l == nil {
		return
	}

	hidden, visible := 0, 0
	for _, c := range l.Cells {
		hidden += c.HiddenCount
		visible += len(c.Events)
	}
	std.log("BUILD", map[string]any{
		"source":    source,
		"mode":      string(l.Grid.Mode),
		"reference": l.Grid.Reference.String(),
		"days":      len(l.Grid.Days),
		"visible":   visible,
		"hidden":    hidden,
		"rejected":  len(l.Rejected),
		"capacity":  l.Options.Capacity,
	})

	for _, r := range l.Rejected {
		std.log("REJECTED", map[string]any{
			"source": source,
			"id":     r.Event.ID,
			"title":  truncate(r.Event.Title, 30),
			"error":  r.Err.Error(),
		})
	}
}

// LogImportSkip logs a calendar entry that could not be imported.
func LogImportSkip(uid string, err error) {
	std.log("IMPORT_SKIP", map[string]any{
		"uid":   uid,
		"error": err.Error(),
	})
}

// LogError logs an error.
func LogError(context string, err error) {
	if err == nil {
		return
	}
	std.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
