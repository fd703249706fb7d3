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

// Package odz implements the odz compressed container format, a
// block-oriented lossless byte-stream compressor. Input is split into
// independent blocks of at most BlockSize bytes; each block is either stored
// verbatim or LZ77-factorized and entropy coded with per-block canonical
// Huffman trees. The container is self-describing and decompresses bit-exactly
// to the original byte sequence.
//
// The format is private to this package. It is not wire compatible with
// DEFLATE, zlib or gzip, carries no checksums, and offers no random access.
package odz

// Container parameters. These are baked into the format and shared by the
// compressor and the decompressor.
const (
	// BlockSize is the fixed upper bound on the decompressed size of a
	// single block.
	BlockSize = 1 << 20

	// Version is the container format version written to and expected in
	// the stream header.
	Version = 2

	minMatch    = 3
	maxMatch    = 258
	maxDistance = 32768

	// The literal-length alphabet: 0..255 literals, 256 end-of-block,
	// 257..285 length codes. Distances use a separate 30-symbol alphabet.
	numLitSym  = 286
	numDistSym = 30
	endOfBlock = 256

	// No Huffman code is longer than maxCodeBits bits.
	maxCodeBits = 15
)

// Compression levels accepted by CompressLevel. The level controls how far
// the match finder walks each hash chain; it does not affect the format.
const (
	BestSpeed          = 1
	DefaultCompression = 6
	BestCompression    = 9
)

// Block types as stored in bits 1-2 of the block flags byte.
const (
	blockStored  = 0
	blockHuffman = 1
)

const (
	flagLastBlock  = 0x01
	blockTypeShift = 1
	blockTypeMask  = 0x3
)

// headerSize is the size of the fixed stream header: the 3-byte magic, the
// version byte and the 8-byte little-endian original size.
const headerSize = 12

var magic = [3]byte{'O', 'D', 'Z'}

// Progress is invoked synchronously after each block with the cumulative
// number of bytes processed and the total expected. Returning a non-nil error
// aborts the operation; the surrounding call then fails with ErrAborted.
// The callback must not reenter the codec.
type Progress func(processed, total uint64) error
