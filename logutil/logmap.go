// Package logutil provides leveled, per-package logging for the odz tools.
// Libraries hold a *Logger; the process owning main decides where log lines
// go by installing a Formatter.
package logutil

import (
	"fmt"
	"strings"
	"sync"
)

// LogLevel is the set of all log levels.
type LogLevel int8

const (
	// CRITICAL is the lowest log level; only errors which will end the program will be propagated.
	CRITICAL LogLevel = iota - 1
	// ERROR is for errors that are not fatal but lead to troubling behavior.
	ERROR
	// WARNING is for errors which are not fatal and not errors, but are unusual. Often sourced from misconfigurations.
	WARNING
	// NOTICE is for normal but significant conditions.
	NOTICE
	// INFO is a log level for common, everyday log updates.
	INFO
	// DEBUG is the default hidden level for more verbose updates about internal processes.
	DEBUG
	// TRACE is for (potentially) call by call tracing of programs.
	TRACE
)

// Char returns a single-character representation of the log level.
func (l LogLevel) Char() string {
	switch l {
	case CRITICAL:
		return "C"
	case ERROR:
		return "E"
	case WARNING:
		return "W"
	case NOTICE:
		return "N"
	case INFO:
		return "I"
	case DEBUG:
		return "D"
	case TRACE:
		return "T"
	default:
		panic("unhandled loglevel")
	}
}

func (l LogLevel) String() string {
	switch l {
	case CRITICAL:
		return "CRITICAL"
	case ERROR:
		return "ERROR"
	case WARNING:
		return "WARNING"
	case NOTICE:
		return "NOTICE"
	case INFO:
		return "INFO"
	case DEBUG:
		return "DEBUG"
	case TRACE:
		return "TRACE"
	default:
		panic("unhandled loglevel")
	}
}

// ParseLevel translates some potential loglevel strings into their
// corresponding levels.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(s) {
	case "CRITICAL", "C":
		return CRITICAL, nil
	case "ERROR", "0", "E":
		return ERROR, nil
	case "WARNING", "1", "W":
		return WARNING, nil
	case "NOTICE", "2", "N":
		return NOTICE, nil
	case "INFO", "3", "I":
		return INFO, nil
	case "DEBUG", "4", "D":
		return DEBUG, nil
	case "TRACE", "5", "T":
		return TRACE, nil
	}
	return CRITICAL, fmt.Errorf("couldn't parse log level %s", s)
}

type loggerStruct struct {
	lock      sync.Mutex
	pkgMap    map[string]*Logger
	formatter Formatter
}

// logger is the global logger
var logger = new(loggerStruct)

// SetFormatter sets the formatting function for all logs.
func SetFormatter(f Formatter) {
	logger.lock.Lock()
	defer logger.lock.Unlock()
	logger.formatter = f
}

// SetGlobalLogLevel sets the log level for all registered package loggers.
func SetGlobalLogLevel(l LogLevel) {
	logger.lock.Lock()
	defer logger.lock.Unlock()
	for _, v := range logger.pkgMap {
		v.level = l
	}
}

// NewPackageLogger registers and returns the logger handle for a package.
// This should be defined as a global var in your package.
func NewPackageLogger(pkg string) *Logger {
	logger.lock.Lock()
	defer logger.lock.Unlock()
	if logger.pkgMap == nil {
		logger.pkgMap = make(map[string]*Logger)
	}
	p, ok := logger.pkgMap[pkg]
	if !ok {
		p = &Logger{pkg: pkg, level: INFO}
		logger.pkgMap[pkg] = p
	}
	return p
}
