package flagutil

import (
	"fmt"

	"github.com/odzip/odz"
	"github.com/odzip/odz/logutil"
)

// LogLevelFlag parses a string into a logutil.LogLevel. This type implements
// the flag.Value interface.
type LogLevelFlag struct {
	val logutil.LogLevel
}

func NewLogLevelFlag(l logutil.LogLevel) *LogLevelFlag {
	return &LogLevelFlag{val: l}
}

func (f *LogLevelFlag) Level() logutil.LogLevel {
	return f.val
}

func (f *LogLevelFlag) Set(v string) error {
	l, err := logutil.ParseLevel(v)
	if err != nil {
		return err
	}
	f.val = l
	return nil
}

func (f *LogLevelFlag) String() string {
	return f.val.String()
}

// LevelFlag parses a string into an odz compression level after asserting
// that it is in range. This type implements the flag.Value interface.
type LevelFlag struct {
	val int
}

func NewLevelFlag(level int) *LevelFlag {
	return &LevelFlag{val: level}
}

func (f *LevelFlag) Level() int {
	return f.val
}

func (f *LevelFlag) Set(v string) error {
	var level int
	if _, err := fmt.Sscanf(v, "%d", &level); err != nil {
		return fmt.Errorf("not a compression level: %q", v)
	}
	if level < odz.BestSpeed || level > odz.BestCompression {
		return fmt.Errorf("compression level %d out of range [%d, %d]",
			level, odz.BestSpeed, odz.BestCompression)
	}
	f.val = level
	return nil
}

func (f *LevelFlag) String() string {
	return fmt.Sprint(f.val)
}
