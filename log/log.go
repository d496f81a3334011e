// Package log provides named, leveled loggers shared by all meshpick packages.
package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to SetLevel.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	leveledBackend logging.LeveledBackend
	moduleLevels   = make(map[string]logging.Level)
	currentSink    io.Writer
)

// Logger is the subset of the go-logging API used across the module.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a named logger. The name shows up in the module column.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects every logger to sink, keeping the current levels.
func SetSink(sink io.Writer) {
	level := logging.NOTICE
	if leveledBackend != nil {
		level = leveledBackend.GetLevel("")
	}

	currentSink = sink
	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(level, "")
	for module, moduleLevel := range moduleLevels {
		leveledBackend.SetLevel(moduleLevel, module)
	}
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity of every logger without a level of its own.
func SetLevel(level Level) {
	leveledBackend.SetLevel(toLoggingLevel(level), "")
}

// SetModuleLevel sets the verbosity of the loggers created with New(module) only,
// e.g. SetModuleLevel(Debug, "bvh") to trace builds without the pick traffic.
func SetModuleLevel(level Level, module string) {
	moduleLevels[module] = toLoggingLevel(level)
	leveledBackend.SetLevel(moduleLevels[module], module)
}

// ResetModuleLevels drops the levels set by SetModuleLevel.
func ResetModuleLevels() {
	clear(moduleLevels)
	SetSink(currentSink)
}

func toLoggingLevel(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Notice:
		return logging.NOTICE
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	default:
		return logging.NOTICE
	}
}

func init() {
	SetSink(os.Stderr)
	SetLevel(Notice)
}
