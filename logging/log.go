package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
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
	case LevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps LOG_LEVEL values to a Level. Unknown values mean INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "OFF":
		return LevelOff
	default:
		return LevelInfo
	}
}

var (
	mu           sync.RWMutex
	currentLevel = LevelInfo
	logger       = log.New(os.Stderr, "contentpilot ", log.LstdFlags|log.Lmicroseconds)
)

// Setup sets the minimum level and the destination. A nil writer keeps stderr.
func Setup(level Level, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
	if w == nil {
		w = os.Stderr
	}
	logger = log.New(w, "contentpilot ", log.LstdFlags|log.Lmicroseconds)
}

// GetLevel returns the active minimum level.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return currentLevel
}

func logf(level Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if level < currentLevel || currentLevel == LevelOff {
		return
	}
	logger.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...any) { logf(LevelDebug, format, args...) }
func Infof(format string, args ...any)  { logf(LevelInfo, format, args...) }
func Warnf(format string, args ...any)  { logf(LevelWarn, format, args...) }
func Errorf(format string, args ...any) { logf(LevelError, format, args...) }

// Fields are appended to every line written through a FieldLogger.
type Fields map[string]any

// FieldLogger adds key=value context to log lines.
type FieldLogger struct {
	suffix string
}

// WithFields returns a logger that appends fields, sorted by key, to each message.
func WithFields(fields Fields) *FieldLogger {
	if len(fields) == 0 {
		return &FieldLogger{}
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return &FieldLogger{suffix: " [" + strings.Join(parts, " ") + "]"}
}

func (fl *FieldLogger) Debugf(format string, args ...any) {
	logf(LevelDebug, "%s%s", fmt.Sprintf(format, args...), fl.suffix)
}

func (fl *FieldLogger) Infof(format string, args ...any) {
	logf(LevelInfo, "%s%s", fmt.Sprintf(format, args...), fl.suffix)
}

func (fl *FieldLogger) Warnf(format string, args ...any) {
	logf(LevelWarn, "%s%s", fmt.Sprintf(format, args...), fl.suffix)
}

func (fl *FieldLogger) Errorf(format string, args ...any) {
	logf(LevelError, "%s%s", fmt.Sprintf(format, args...), fl.suffix)
}
