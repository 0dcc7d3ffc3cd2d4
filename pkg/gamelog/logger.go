// Package gamelog is a small leveled logger for the gammactl host, built in
// the shape of junjiewwang-perf-analysis's pkg/utils.Logger: an interface
// with Debug/Info/Warn/Error plus WithField/WithFields for attaching
// per-run context (gammactl attaches a session id; see cmd/gammactl).
//
// The engine package (gamma) itself never logs — it is a pure state
// machine per spec.md §5 — logging lives entirely at the host edge, the way
// the teacher repo keeps game logic in hub.go free of its own log.Printf
// calls on the hot path and only logs around it.
package gamelog

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config/flag string onto a Level, defaulting to Info for
// anything unrecognized.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is the interface gammactl's command layer depends on.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

// writer is the concrete Logger: a mutex-guarded io.Writer sink plus a set
// of structured fields carried by WithField/WithFields.
type writer struct {
	mu     *sync.Mutex
	out    io.Writer
	level  Level
	fields map[string]interface{}
}

// New builds a Logger writing lines at or above level to out.
func New(level Level, out io.Writer) Logger {
	return &writer{mu: &sync.Mutex{}, out: out, level: level, fields: map[string]interface{}{}}
}

func (w *writer) WithField(key string, value interface{}) Logger {
	return w.WithFields(map[string]interface{}{key: value})
}

func (w *writer) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(w.fields)+len(fields))
	for k, v := range w.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &writer{mu: w.mu, out: w.out, level: w.level, fields: merged}
}

func (w *writer) Debug(format string, args ...interface{}) { w.log(LevelDebug, format, args...) }
func (w *writer) Info(format string, args ...interface{})  { w.log(LevelInfo, format, args...) }
func (w *writer) Warn(format string, args ...interface{})  { w.log(LevelWarn, format, args...) }
func (w *writer) Error(format string, args ...interface{}) { w.log(LevelError, format, args...) }

func (w *writer) log(level Level, format string, args ...interface{}) {
	if level < w.level {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02T15:04:05.000Z07:00"))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	fmt.Fprintf(&b, format, args...)
	if len(w.fields) > 0 {
		keys := make([]string, 0, len(w.fields))
		for k := range w.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, w.fields[k])
		}
	}
	b.WriteByte('\n')
	io.WriteString(w.out, b.String())
}
