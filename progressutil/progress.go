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

// Package progressutil renders codec progress callbacks as a terminal
// progress bar. A ProgressPrinter's Update method has the shape of an
// odz.Progress, so it can be handed to the codec directly or composed into
// a callback that also checks for cancellation.
package progressutil

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/docker/go-units"
)

const barWidth = 80

// ByteUnitStr pretty prints a number of bytes.
func ByteUnitStr(n int64) string {
	return units.HumanSize(float64(n))
}

// A ProgressPrinter draws one task's progress as a single line, rewriting it
// in place on every update the way a terminal download meter does.
type ProgressPrinter struct {
	lock sync.Mutex

	w       io.Writer
	name    string
	printed bool
}

func NewProgressPrinter(w io.Writer, name string) *ProgressPrinter {
	return &ProgressPrinter{w: w, name: name}
}

// Update redraws the bar. It never fails and always reports nil, matching
// the codec's progress callback shape.
func (pp *ProgressPrinter) Update(processed, total uint64) error {
	pp.lock.Lock()
	defer pp.lock.Unlock()

	line := renderBar(barWidth, pp.name, processed, total)
	if pp.printed {
		// Move the cursor up over the previous rendition.
		fmt.Fprintf(pp.w, "\033[1A%s\n", line)
	} else {
		fmt.Fprintf(pp.w, "%s\n", line)
		pp.printed = true
	}
	return nil
}

func renderBar(width int, name string, processed, total uint64) string {
	frac := 1.0
	if total > 0 {
		frac = float64(processed) / float64(total)
	}
	if frac > 1 {
		frac = 1
	}
	suffix := fmt.Sprintf("%s / %s (%.2f%%)",
		ByteUnitStr(int64(processed)), ByteUnitStr(int64(total)), frac*100)

	inner := width - len(name) - len(suffix) - 4
	if inner < 4 {
		return fmt.Sprintf("%s %s", name, suffix)
	}
	fill := int(frac * float64(inner))
	var bar string
	switch {
	case fill <= 0:
		bar = strings.Repeat(" ", inner)
	case fill >= inner:
		bar = strings.Repeat("=", inner)
	default:
		bar = strings.Repeat("=", fill-1) + ">" + strings.Repeat(" ", inner-fill)
	}
	return fmt.Sprintf("%s [%s] %s", name, bar, suffix)
}
