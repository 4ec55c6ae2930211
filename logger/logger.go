// Package logger provides leveled, human-readable logging for the proxy.
//
// It fronts logrus with one extra level, NOTICE, which sits between INFO and
// WARNING: chatty-but-not-noisy operational events (client connected, session
// ended) log there so they survive the default filter while per-packet debug
// output does not.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Level is the logger's own severity scale.
type Level int32

const (
	DEBUG Level = iota
	INFO
	NOTICE
	WARNING
	ERROR
	CRITICAL
)

// String returns the level name as it appears in log records.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case NOTICE:
		return "NOTICE"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case CRITICAL:
		return "CRITICAL"
	}
	return "UNKNOWN"
}

// logrusLevel maps our scale onto logrus's. NOTICE and CRITICAL have no
// logrus equivalent and borrow the nearest level; the record keeps its own
// name via the formatter.
func (l Level) logrusLevel() logrus.Level {
	switch l {
	case DEBUG:
		return logrus.DebugLevel
	case INFO, NOTICE:
		return logrus.InfoLevel
	case WARNING:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}

const levelNameKey = "level_name"

// levelFormatter renders records as "LEVEL: message", with a timestamp in
// front when debug output is enabled.
type levelFormatter struct {
	timestamps bool
}

func (f *levelFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	name, _ := entry.Data[levelNameKey].(string)
	if name == "" {
		name = entry.Level.String()
	}

	var line string
	if f.timestamps {
		line = fmt.Sprintf("%s %s: %s\n",
			entry.Time.Format("2006-01-02 15:04:05,000"), name, entry.Message)
	} else {
		line = fmt.Sprintf("%s: %s\n", name, entry.Message)
	}
	return []byte(line), nil
}

var (
	backend  = newBackend()
	minLevel atomic.Int32
)

func newBackend() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	// filtering happens against our own scale; logrus passes everything
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&levelFormatter{})
	return l
}

func init() {
	minLevel.Store(int32(NOTICE))
}

// Configure sets the global threshold and output. Records below level are
// dropped. DEBUG adds timestamps to every record.
func Configure(level Level, output io.Writer) {
	minLevel.Store(int32(level))
	if output != nil {
		backend.SetOutput(output)
	}
	backend.SetFormatter(&levelFormatter{timestamps: level <= DEBUG})
}

// Logger is instantiated by every package that wants to log, carrying the
// package name. The name is not rendered: records show only the level name
// and the message.
type Logger struct {
	name string
}

// New creates a named Logger.
func New(name string) *Logger {
	return &Logger{name: name}
}

func (l *Logger) log(level Level, format string, args ...any) {
	if Level(minLevel.Load()) > level {
		return
	}
	entry := backend.WithField(levelNameKey, level.String())
	entry.Log(level.logrusLevel(), fmt.Sprintf(format, args...))
}

// Debugf logs at DEBUG.
func (l *Logger) Debugf(format string, args ...any) { l.log(DEBUG, format, args...) }

// Infof logs at INFO.
func (l *Logger) Infof(format string, args ...any) { l.log(INFO, format, args...) }

// Noticef logs at NOTICE.
func (l *Logger) Noticef(format string, args ...any) { l.log(NOTICE, format, args...) }

// Warningf logs at WARNING.
func (l *Logger) Warningf(format string, args ...any) { l.log(WARNING, format, args...) }

// Errorf logs at ERROR.
func (l *Logger) Errorf(format string, args ...any) { l.log(ERROR, format, args...) }

// Criticalf logs at CRITICAL.
func (l *Logger) Criticalf(format string, args ...any) { l.log(CRITICAL, format, args...) }

// IsDebug reports whether DEBUG records pass the filter.
func (l *Logger) IsDebug() bool {
	return Level(minLevel.Load()) <= DEBUG
}
