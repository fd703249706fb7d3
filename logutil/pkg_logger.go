package logutil

import (
	"fmt"
	"os"
)

// A Logger emits log lines on behalf of one package. All loggers share the
// process-wide formatter installed with SetFormatter; with no formatter
// installed, logging is a no-op.
type Logger struct {
	pkg   string
	level LogLevel
}

func (p *Logger) internalLog(inLevel LogLevel, msg string) {
	logger.lock.Lock()
	defer logger.lock.Unlock()
	if logger.formatter != nil {
		logger.formatter.Format(p.pkg, inLevel, msg)
	}
}

// SetLevel adjusts how verbose this package's logger is.
func (p *Logger) SetLevel(l LogLevel) {
	logger.lock.Lock()
	defer logger.lock.Unlock()
	p.level = l
}

// LevelAt reports whether the logger currently emits at level l, for guarding
// expensive log argument construction.
func (p *Logger) LevelAt(l LogLevel) bool {
	logger.lock.Lock()
	defer logger.lock.Unlock()
	return p.level >= l
}

func (p *Logger) Errorf(format string, args ...interface{}) {
	if p.level < ERROR {
		return
	}
	p.internalLog(ERROR, fmt.Sprintf(format, args...))
}

func (p *Logger) Warningf(format string, args ...interface{}) {
	if p.level < WARNING {
		return
	}
	p.internalLog(WARNING, fmt.Sprintf(format, args...))
}

func (p *Logger) Noticef(format string, args ...interface{}) {
	if p.level < NOTICE {
		return
	}
	p.internalLog(NOTICE, fmt.Sprintf(format, args...))
}

func (p *Logger) Infof(format string, args ...interface{}) {
	if p.level < INFO {
		return
	}
	p.internalLog(INFO, fmt.Sprintf(format, args...))
}

func (p *Logger) Debugf(format string, args ...interface{}) {
	if p.level < DEBUG {
		return
	}
	p.internalLog(DEBUG, fmt.Sprintf(format, args...))
}

func (p *Logger) Tracef(format string, args ...interface{}) {
	if p.level < TRACE {
		return
	}
	p.internalLog(TRACE, fmt.Sprintf(format, args...))
}

// Fatalf logs at CRITICAL and exits the program.
func (p *Logger) Fatalf(format string, args ...interface{}) {
	p.internalLog(CRITICAL, fmt.Sprintf(format, args...))
	os.Exit(1)
}

// Panicf logs at CRITICAL and panics.
func (p *Logger) Panicf(format string, args ...interface{}) {
	s := fmt.Sprintf(format, args...)
	p.internalLog(CRITICAL, s)
	panic(s)
}
