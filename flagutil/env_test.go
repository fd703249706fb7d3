package flagutil

import (
	"flag"
	"os"
	"testing"
)

func TestSetFlagsFromEnv(t *testing.T) {
	fs := flag.NewFlagSet("testing", flag.ExitOnError)
	fs.String("a", "", "")
	fs.String("b", "", "")
	fs.String("some-flag", "", "")
	fs.Parse([]string{})

	// flags should be settable using env vars
	os.Setenv("ODZ_A", "foo")
	// and command-line flags take precedence over env vars
	os.Setenv("ODZ_B", "zoo")
	fs.Set("b", "bar")
	// dashes translate to underscores
	os.Setenv("ODZ_SOME_FLAG", "quux")
	defer os.Unsetenv("ODZ_A")
	defer os.Unsetenv("ODZ_B")
	defer os.Unsetenv("ODZ_SOME_FLAG")

	if err := SetFlagsFromEnv(fs, "ODZ"); err != nil {
		t.Fatal(err)
	}

	for name, want := range map[string]string{
		"a":         "foo",
		"b":         "bar",
		"some-flag": "quux",
	} {
		if got := fs.Lookup(name).Value.String(); got != want {
			t.Errorf("flag %q = %q, want %q", name, got, want)
		}
	}
}

func TestSetFlagsFromEnvBad(t *testing.T) {
	fs := flag.NewFlagSet("testing", flag.ContinueOnError)
	fs.Int("n", 0, "")
	os.Setenv("ODZ_N", "notanumber")
	defer os.Unsetenv("ODZ_N")
	if err := SetFlagsFromEnv(fs, "ODZ"); err == nil {
		t.Error("expected non-nil error")
	}
}
