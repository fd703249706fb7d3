package logutil_test

import (
	"os"

	"github.com/odzip/odz/logutil"
)

var plog = logutil.NewPackageLogger("example")

func Example() {
	logutil.SetFormatter(logutil.NewStringFormatter(os.Stdout))
	plog.Infof("hello, %s", "dolly")
	// Output:
	// example: hello, dolly
}
