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

package odz

import (
	"errors"
	"strconv"
)

// A CorruptInputError reports a violation of a data-integrity invariant at a
// given byte offset in the compressed stream: an oversubscribed code-length
// table, a symbol outside its alphabet, a distance reaching before the start
// of the block, a block over- or undershooting its recorded size, or a
// truncated bitstream.
type CorruptInputError int64

func (e CorruptInputError) Error() string {
	return "odz: corrupt input before offset " + strconv.FormatInt(int64(e), 10)
}

// A FormatError reports a malformed container: bad magic, an unsupported
// version, or an unknown block type.
type FormatError string

func (e FormatError) Error() string { return "odz: invalid format: " + string(e) }

// A ReadError reports an error from the underlying source.
type ReadError struct {
	Offset int64 // byte offset in the compressed stream where the error occurred
	Err    error // error returned by the underlying Read
}

func (e *ReadError) Error() string {
	return "odz: read error at offset " + strconv.FormatInt(e.Offset, 10) + ": " + e.Err.Error()
}

func (e *ReadError) Unwrap() error { return e.Err }

// A WriteError reports an error from the underlying sink.
type WriteError struct {
	Offset int64 // byte offset in the output where the error occurred
	Err    error // error returned by the underlying Write
}

func (e *WriteError) Error() string {
	return "odz: write error at offset " + strconv.FormatInt(e.Offset, 10) + ": " + e.Err.Error()
}

func (e *WriteError) Unwrap() error { return e.Err }

// ErrAborted is returned when a Progress callback requested an abort. The
// partial output already flushed to the sink is not valid odz data.
var ErrAborted = errors.New("odz: aborted by progress callback")
