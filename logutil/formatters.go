package logutil

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

var pid = os.Getpid()

// A Formatter renders one log line somewhere.
type Formatter interface {
	Format(pkg string, level LogLevel, msg string)
}

// NewStringFormatter returns the plainest formatter: "pkg: message".
func NewStringFormatter(w io.Writer) *StringFormatter {
	return &StringFormatter{
		w: bufio.NewWriter(w),
	}
}

type StringFormatter struct {
	w *bufio.Writer
}

func (s *StringFormatter) Format(pkg string, _ LogLevel, msg string) {
	if pkg != "" {
		s.w.WriteString(pkg + ": ")
	}
	s.w.WriteString(msg)
	if !strings.HasSuffix(msg, "\n") {
		s.w.WriteString("\n")
	}
	s.w.Flush()
}

// NewGlogFormatter prefixes each line with a glog-style header carrying the
// level, timestamp and pid.
func NewGlogFormatter(w io.Writer) *GlogFormatter {
	g := &GlogFormatter{}
	g.w = bufio.NewWriter(w)
	return g
}

type GlogFormatter struct {
	StringFormatter
}

func (g *GlogFormatter) Format(pkg string, level LogLevel, msg string) {
	g.w.Write(glogHeader(level))
	g.StringFormatter.Format(pkg, level, msg)
}

func glogHeader(level LogLevel) []byte {
	// Lmmdd hh:mm:ss.uuuuuu pid]
	now := time.Now()
	buf := &bytes.Buffer{}
	buf.Grow(30)
	_, month, day := now.Date()
	hour, minute, second := now.Clock()
	buf.WriteString(level.Char())
	twoDigits(buf, int(month))
	twoDigits(buf, day)
	buf.WriteByte(' ')
	twoDigits(buf, hour)
	buf.WriteByte(':')
	twoDigits(buf, minute)
	buf.WriteByte(':')
	twoDigits(buf, second)
	buf.WriteByte('.')
	buf.WriteString(fmt.Sprintf("%06d", now.Nanosecond()/1000))
	buf.WriteByte(' ')
	buf.WriteString(fmt.Sprint(pid))
	buf.WriteByte(']')
	buf.WriteByte(' ')
	return buf.Bytes()
}

const digits = "0123456789"

func twoDigits(b *bytes.Buffer, d int) {
	c2 := digits[d%10]
	d /= 10
	c1 := digits[d%10]
	b.WriteByte(c1)
	b.WriteByte(c2)
}
