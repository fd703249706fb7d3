// Copyright 2016 The odz Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// odz compresses and decompresses files in the odz container format.
//
//	odz [-level N] file          compress file to file.odz
//	odz -d file.odz              decompress file.odz to file
//
// Flags may also come from ODZ_* environment variables or from a YAML
// config file given with -config.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"strings"

	"github.com/odzip/odz"
	"github.com/odzip/odz/flagutil"
	"github.com/odzip/odz/logutil"
	"github.com/odzip/odz/progressutil"
	"github.com/odzip/odz/yamlutil"
)

const suffix = ".odz"

var plog = logutil.NewPackageLogger("cmd/odz")

var errInterrupted = errors.New("interrupted")

func main() {
	fs := flag.NewFlagSet("odz", flag.ExitOnError)
	var (
		decompress = fs.Bool("d", false, "decompress instead of compress")
		output     = fs.String("o", "", "output path (default: input path with "+suffix+" added or removed)")
		config     = fs.String("config", "", "YAML file supplying defaults for these flags")
		keep       = fs.Bool("k", false, "keep a partial output file after a failure")
		progress   = fs.Bool("progress", false, "draw a progress bar on stderr")
		level      = flagutil.NewLevelFlag(odz.DefaultCompression)
		logLevel   = flagutil.NewLogLevelFlag(logutil.INFO)
	)
	fs.Var(level, "level", "compression level (1..9)")
	fs.Var(logLevel, "log-level", "log verbosity (CRITICAL..TRACE)")
	fs.Parse(os.Args[1:])

	logutil.SetFormatter(logutil.NewDefaultFormatter(os.Stderr))

	if err := flagutil.SetFlagsFromEnv(fs, "ODZ"); err != nil {
		plog.Fatalf("%v", err)
	}
	if *config != "" {
		raw, err := ioutil.ReadFile(*config)
		if err != nil {
			plog.Fatalf("reading config: %v", err)
		}
		if err := yamlutil.SetFlagsFromYaml(fs, raw); err != nil {
			plog.Fatalf("applying config: %v", err)
		}
	}
	logutil.SetGlobalLogLevel(logLevel.Level())

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: odz [flags] file\n")
		fs.PrintDefaults()
		os.Exit(2)
	}
	inPath := fs.Arg(0)
	outPath := *output
	if outPath == "" {
		var err error
		outPath, err = defaultOutputPath(inPath, *decompress)
		if err != nil {
			plog.Fatalf("%v", err)
		}
	}

	if err := run(inPath, outPath, *decompress, level.Level(), *progress, *keep); err != nil {
		plog.Fatalf("%v", err)
	}
}

func defaultOutputPath(inPath string, decompress bool) (string, error) {
	if !decompress {
		return inPath + suffix, nil
	}
	if !strings.HasSuffix(inPath, suffix) {
		return "", fmt.Errorf("%s has no %s suffix; use -o", inPath, suffix)
	}
	return strings.TrimSuffix(inPath, suffix), nil
}

func run(inPath, outPath string, decompress bool, level int, drawBar, keep bool) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()
	fi, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	// SIGINT aborts through the codec's progress callback at the next
	// block boundary.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	defer signal.Stop(sigc)

	var bar *progressutil.ProgressPrinter
	if drawBar {
		bar = progressutil.NewProgressPrinter(os.Stderr, modeName(decompress))
	}
	callback := func(processed, total uint64) error {
		select {
		case <-sigc:
			return errInterrupted
		default:
		}
		if bar != nil {
			bar.Update(processed, total)
		}
		return nil
	}

	src := bufio.NewReader(in)
	dst := bufio.NewWriter(out)
	if decompress {
		err = odz.Decompress(dst, src, callback)
	} else {
		err = odz.CompressLevel(dst, src, fi.Size(), level, callback)
	}
	if err == nil {
		err = dst.Flush()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// Unless -k is given, a failed run removes its partial output.
		if !keep {
			os.Remove(outPath)
		}
		return err
	}

	fo, err := os.Stat(outPath)
	if err != nil {
		return err
	}
	plog.Infof("%s: %s in, %s out", outPath,
		progressutil.ByteUnitStr(fi.Size()), progressutil.ByteUnitStr(fo.Size()))
	return nil
}

func modeName(decompress bool) string {
	if decompress {
		return "decompress"
	}
	return "compress"
}
