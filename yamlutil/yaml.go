// Package yamlutil fills unset command-line flags from a YAML document, so
// a config file can supply defaults without overriding what the user typed.
package yamlutil

import (
	"flag"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

// SetFlagsFromYaml visits every flag registered in fs that was not set on
// the command line and looks its value up in rawYaml under the key
// REPLACE(UPPERCASE(flagname), '-', '_').
func SetFlagsFromYaml(fs *flag.FlagSet, rawYaml []byte) error {
	conf := make(map[string]string)
	if err := yaml.Unmarshal(rawYaml, conf); err != nil {
		return err
	}

	alreadySet := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		alreadySet[f.Name] = true
	})

	var err error
	fs.VisitAll(func(f *flag.Flag) {
		if alreadySet[f.Name] {
			return
		}
		key := strings.Replace(strings.ToUpper(f.Name), "-", "_", -1)
		val, ok := conf[key]
		if !ok {
			return
		}
		if serr := fs.Set(f.Name, val); serr != nil {
			err = fmt.Errorf("invalid value %q for %s: %v", val, key, serr)
		}
	})
	return err
}
