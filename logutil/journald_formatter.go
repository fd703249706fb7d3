package logutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/coreos/go-systemd/v22/journal"
)

// NewJournaldFormatter sends log lines to the systemd journal, keeping the
// package name as a journal field. It fails when no journal socket is
// reachable, so callers can fall back to a stream formatter.
func NewJournaldFormatter() (Formatter, error) {
	if !journal.Enabled() {
		return nil, errors.New("No systemd detected")
	}
	return &journaldFormatter{}, nil
}

type journaldFormatter struct{}

func (j *journaldFormatter) Format(pkg string, l LogLevel, msg string) {
	var pri journal.Priority
	switch l {
	case CRITICAL:
		pri = journal.PriCrit
	case ERROR:
		pri = journal.PriErr
	case WARNING:
		pri = journal.PriWarning
	case NOTICE:
		pri = journal.PriNotice
	case INFO:
		pri = journal.PriInfo
	case DEBUG, TRACE:
		pri = journal.PriDebug
	default:
		panic("unhandled loglevel")
	}

	vars := map[string]string{}
	if pkg != "" {
		vars["PACKAGE"] = pkg
	}
	if err := journal.Send(msg, pri, vars); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// NewDefaultFormatter prefers the journal when the process runs under
// systemd and falls back to plain lines on w otherwise.
func NewDefaultFormatter(w io.Writer) Formatter {
	if f, err := NewJournaldFormatter(); err == nil {
		return f
	}
	return NewStringFormatter(w)
}
