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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Compress reads exactly size bytes from src and writes the odz container to
// dst at DefaultCompression. progress may be nil.
func Compress(dst io.Writer, src io.Reader, size int64, progress Progress) error {
	return CompressLevel(dst, src, size, DefaultCompression, progress)
}

// CompressLevel is Compress with an explicit compression level in
// [BestSpeed, BestCompression]. The level trades match-finder effort for
// ratio; every level produces a stream any decompressor accepts.
//
// size must be the exact number of bytes src will deliver: the container
// records the original size up front, so sources of unknown length are not
// supported.
func CompressLevel(dst io.Writer, src io.Reader, size int64, level int, progress Progress) error {
	if level < BestSpeed || level > BestCompression {
		return fmt.Errorf("odz: invalid compression level %d", level)
	}
	if size < 0 {
		return errors.New("odz: negative input size")
	}

	var woffset int64

	var hdr [headerSize]byte
	copy(hdr[:3], magic[:])
	hdr[3] = Version
	binary.LittleEndian.PutUint64(hdr[4:], uint64(size))
	if n, err := dst.Write(hdr[:]); err != nil {
		return &WriteError{woffset + int64(n), err}
	}
	woffset += headerSize

	enc := newBlockEncoder(4 << uint(level))
	win := make([]byte, BlockSize)
	var blk []byte
	var processed uint64

	for {
		want := int64(BlockSize)
		if remain := size - int64(processed); remain < want {
			want = remain
		}
		if n, err := io.ReadFull(src, win[:want]); err != nil {
			return &ReadError{int64(processed) + int64(n), err}
		}
		processed += uint64(want)
		last := processed == uint64(size)

		blk = enc.encode(blk[:0], win[:want], last)
		if n, err := dst.Write(blk); err != nil {
			return &WriteError{woffset + int64(n), err}
		}
		woffset += int64(len(blk))

		if progress != nil {
			if err := progress(processed, uint64(size)); err != nil {
				return ErrAborted
			}
		}
		if last {
			return nil
		}
	}
}

// Decompress reads an odz container from src and writes the original bytes
// to dst. progress may be nil; it sees cumulative decoded bytes against the
// header's original size.
func Decompress(dst io.Writer, src io.Reader, progress Progress) error {
	var roffset, woffset int64

	var hdr [headerSize]byte
	if n, err := io.ReadFull(src, hdr[:]); err != nil {
		return &ReadError{int64(n), noEOF(err)}
	}
	roffset = headerSize
	if !bytes.Equal(hdr[:3], magic[:]) {
		return FormatError("bad magic")
	}
	if hdr[3] != Version {
		return FormatError(fmt.Sprintf("unsupported version %d", hdr[3]))
	}
	size := binary.LittleEndian.Uint64(hdr[4:])

	dec := new(blockDecoder)
	out := make([]byte, BlockSize)
	var payload []byte
	var written uint64

	for {
		var bhdr [5]byte
		if n, err := io.ReadFull(src, bhdr[:]); err != nil {
			return &ReadError{roffset + int64(n), noEOF(err)}
		}
		roffset += int64(len(bhdr))

		flags := bhdr[0]
		last := flags&flagLastBlock != 0
		typ := int(flags>>blockTypeShift) & blockTypeMask
		rawSize := binary.LittleEndian.Uint32(bhdr[1:])
		if typ != blockStored && typ != blockHuffman {
			return FormatError(fmt.Sprintf("unknown block type %d", typ))
		}
		if rawSize > BlockSize || written+uint64(rawSize) > size {
			return CorruptInputError(roffset)
		}

		switch typ {
		case blockStored:
			if n, err := io.ReadFull(src, out[:rawSize]); err != nil {
				return &ReadError{roffset + int64(n), noEOF(err)}
			}
			roffset += int64(rawSize)

		case blockHuffman:
			var chdr [4]byte
			if n, err := io.ReadFull(src, chdr[:]); err != nil {
				return &ReadError{roffset + int64(n), noEOF(err)}
			}
			roffset += int64(len(chdr))
			compSize := binary.LittleEndian.Uint32(chdr[:])
			// Our encoder only picks Huffman when it beats the raw
			// bytes; leave headroom for less careful encoders.
			if compSize > BlockSize+1024 {
				return CorruptInputError(roffset)
			}
			if cap(payload) < int(compSize) {
				payload = make([]byte, compSize)
			}
			payload = payload[:compSize]
			if n, err := io.ReadFull(src, payload); err != nil {
				return &ReadError{roffset + int64(n), noEOF(err)}
			}
			if err := dec.decode(payload, out[:rawSize], roffset); err != nil {
				return err
			}
			roffset += int64(compSize)
		}

		if n, err := dst.Write(out[:rawSize]); err != nil {
			return &WriteError{woffset + int64(n), err}
		}
		woffset += int64(rawSize)
		written += uint64(rawSize)

		if progress != nil {
			if err := progress(written, size); err != nil {
				return ErrAborted
			}
		}
		if last {
			break
		}
	}

	if written != size {
		return CorruptInputError(roffset)
	}
	return nil
}

// noEOF maps a clean EOF to ErrUnexpectedEOF: inside a container, running
// out of bytes is always a truncation.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// CompressBytes compresses data into a fresh in-memory container.
func CompressBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + headerSize + 16)
	if err := Compress(&buf, bytes.NewReader(data), int64(len(data)), nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressBytes decompresses an in-memory container.
func DecompressBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Decompress(&buf, bytes.NewReader(data), nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
