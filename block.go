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
	"encoding/binary"
)

// Per-block payload layout after the header: 5 bits numLit-257, 5 bits
// numDist-1, 4 bits numClen-4, then numClen 3-bit lengths for the
// code-length alphabet (in clenOrder), then the literal-length and distance
// code lengths as one run-length-coded sequence under that alphabet, then
// the token codes, the end-of-block code, and zero padding to a byte
// boundary. Untransmitted lengths are zero.

// The code-length alphabet: 0..15 are literal lengths, 16 repeats the
// previous length 3-6 times (2 extra bits), 17 and 18 repeat zero 3-10
// (3 extra bits) and 11-138 (7 extra bits) times. Its own lengths travel in
// a fixed order that fronts the symbols most likely to be used, so trailing
// zeros can be trimmed.
const (
	numClenSym  = 19
	maxClenBits = 7
)

var clenOrder = [numClenSym]uint8{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// A blockEncoder owns all scratch needed to encode blocks; one instance
// serves a whole stream.
type blockEncoder struct {
	maxChain int

	mf     matchFinder
	tokens []token
	bw     bitWriter
	cb     codeBuilder

	litFreq  [numLitSym]int32
	distFreq [numDistSym]int32
	litLen   [numLitSym]uint8
	distLen  [numDistSym]uint8
	litCode  [numLitSym]uint16
	distCode [numDistSym]uint16

	lenSeq   []uint8
	clenOps  []uint16
	clenLen  [numClenSym]uint8
	clenCode [numClenSym]uint16
}

func newBlockEncoder(maxChain int) *blockEncoder {
	return &blockEncoder{maxChain: maxChain}
}

// encode appends one complete block (header plus payload) for win to dst and
// returns the extended slice. A Huffman rendition that does not beat the raw
// bytes is discarded in favor of a stored block.
func (e *blockEncoder) encode(dst []byte, win []byte, last bool) []byte {
	e.tokens = tokenize(&e.mf, win, e.maxChain, e.tokens)

	for i := range e.litFreq {
		e.litFreq[i] = 0
	}
	for i := range e.distFreq {
		e.distFreq[i] = 0
	}
	e.litFreq[endOfBlock] = 1
	for _, t := range e.tokens {
		if t.isMatch() {
			e.litFreq[257+int(lengthCode[t.length()-minMatch])]++
			e.distFreq[distanceCode(t.dist())]++
		} else {
			e.litFreq[t.literal()]++
		}
	}

	ensureTwoCodes(e.litFreq[:])
	ensureTwoCodes(e.distFreq[:])
	e.cb.buildLengths(e.litFreq[:], e.litLen[:], maxCodeBits)
	e.cb.buildLengths(e.distFreq[:], e.distLen[:], maxCodeBits)
	canonicalCodes(e.litLen[:], e.litCode[:])
	canonicalCodes(e.distLen[:], e.distCode[:])

	e.writePayload()

	payload := e.bw.bytes()
	if len(payload) >= len(win) {
		dst = appendBlockHeader(dst, blockStored, last, len(win), 0)
		return append(dst, win...)
	}
	dst = appendBlockHeader(dst, blockHuffman, last, len(win), len(payload))
	return append(dst, payload...)
}

func (e *blockEncoder) writePayload() {
	bw := &e.bw
	bw.reset()

	numLit := numLitSym
	for numLit > 257 && e.litLen[numLit-1] == 0 {
		numLit--
	}
	numDist := numDistSym
	for numDist > 1 && e.distLen[numDist-1] == 0 {
		numDist--
	}

	e.writeTrees(numLit, numDist)

	for _, t := range e.tokens {
		if !t.isMatch() {
			s := int(t.literal())
			bw.writeBits(uint32(e.litCode[s]), uint(e.litLen[s]))
			continue
		}
		length, dist := t.length(), t.dist()
		lc := int(lengthCode[length-minMatch])
		s := 257 + lc
		bw.writeBits(uint32(e.litCode[s]), uint(e.litLen[s]))
		bw.writeBits(uint32(length-int(baseLength[lc])), uint(extraLengthBits[lc]))
		dc := distanceCode(dist)
		bw.writeBits(uint32(e.distCode[dc]), uint(e.distLen[dc]))
		bw.writeBits(uint32(dist-int(baseDist[dc])), uint(extraDistBits[dc]))
	}
	bw.writeBits(uint32(e.litCode[endOfBlock]), uint(e.litLen[endOfBlock]))
	bw.flush()
}

// writeTrees run-length-codes the concatenated code-length arrays and emits
// them under a Huffman code of their own. Each op packs the code-length
// symbol in its low 5 bits and any repeat payload above.
func (e *blockEncoder) writeTrees(numLit, numDist int) {
	seq := append(e.lenSeq[:0], e.litLen[:numLit]...)
	seq = append(seq, e.distLen[:numDist]...)
	e.lenSeq = seq

	ops := e.clenOps[:0]
	for i := 0; i < len(seq); {
		v := seq[i]
		j := i + 1
		for j < len(seq) && seq[j] == v {
			j++
		}
		run := j - i
		if v == 0 {
			for run >= 11 {
				n := run
				if n > 138 {
					n = 138
				}
				ops = append(ops, 18|uint16(n-11)<<5)
				run -= n
			}
			if run >= 3 {
				ops = append(ops, 17|uint16(run-3)<<5)
				run = 0
			}
			for ; run > 0; run-- {
				ops = append(ops, 0)
			}
		} else {
			ops = append(ops, uint16(v))
			run--
			for run >= 3 {
				n := run
				if n > 6 {
					n = 6
				}
				ops = append(ops, 16|uint16(n-3)<<5)
				run -= n
			}
			for ; run > 0; run-- {
				ops = append(ops, uint16(v))
			}
		}
		i = j
	}
	e.clenOps = ops

	var clenFreq [numClenSym]int32
	for _, op := range ops {
		clenFreq[op&31]++
	}
	ensureTwoCodes(clenFreq[:])
	e.cb.buildLengths(clenFreq[:], e.clenLen[:], maxClenBits)
	canonicalCodes(e.clenLen[:], e.clenCode[:])

	numClen := numClenSym
	for numClen > 4 && e.clenLen[clenOrder[numClen-1]] == 0 {
		numClen--
	}

	bw := &e.bw
	bw.writeBits(uint32(numLit-257), 5)
	bw.writeBits(uint32(numDist-1), 5)
	bw.writeBits(uint32(numClen-4), 4)
	for _, c := range clenOrder[:numClen] {
		bw.writeBits(uint32(e.clenLen[c]), 3)
	}
	for _, op := range ops {
		c := op & 31
		bw.writeBits(uint32(e.clenCode[c]), uint(e.clenLen[c]))
		switch c {
		case 16:
			bw.writeBits(uint32(op>>5), 2)
		case 17:
			bw.writeBits(uint32(op>>5), 3)
		case 18:
			bw.writeBits(uint32(op>>5), 7)
		}
	}
}

func appendBlockHeader(dst []byte, typ int, last bool, rawSize, compSize int) []byte {
	flags := byte(typ << blockTypeShift)
	if last {
		flags |= flagLastBlock
	}
	dst = append(dst, flags)
	var u [4]byte
	binary.LittleEndian.PutUint32(u[:], uint32(rawSize))
	dst = append(dst, u[:]...)
	if typ == blockHuffman {
		binary.LittleEndian.PutUint32(u[:], uint32(compSize))
		dst = append(dst, u[:]...)
	}
	return dst
}

// A blockDecoder owns the decode tables and bit reader for a stream; all of
// it is reused across blocks.
type blockDecoder struct {
	br   bitReader
	lit  huffmanDecoder
	dist huffmanDecoder
	clen huffmanDecoder

	lens [numLitSym + numDistSym]uint8
}

// decode decodes one Huffman block payload into out, whose length is the
// block's recorded raw size. off is the stream offset of the payload, used
// to position corruption errors.
func (d *blockDecoder) decode(payload, out []byte, off int64) error {
	br := &d.br
	br.init(payload)
	corrupt := func() error { return CorruptInputError(off + br.bytesUsed()) }

	numLit, numDist, err := d.readTrees(off)
	if err != nil {
		return err
	}
	if !d.lit.init(d.lens[:numLit]) || !d.dist.init(d.lens[numLit:numLit+numDist]) {
		return corrupt()
	}

	pos := 0
	for {
		sym, ok := d.lit.decode(br)
		if !ok {
			return corrupt()
		}
		if sym < 256 {
			if pos >= len(out) {
				return corrupt()
			}
			out[pos] = byte(sym)
			pos++
			continue
		}
		if sym == endOfBlock {
			break
		}

		i := sym - 257
		if i >= len(baseLength) {
			return corrupt()
		}
		extra, ok := br.readBits(uint(extraLengthBits[i]))
		if !ok {
			return corrupt()
		}
		length := int(baseLength[i]) + int(extra)

		dsym, ok := d.dist.decode(br)
		if !ok || dsym >= len(baseDist) {
			return corrupt()
		}
		extra, ok = br.readBits(uint(extraDistBits[dsym]))
		if !ok {
			return corrupt()
		}
		dist := int(baseDist[dsym]) + int(extra)

		if dist > pos || pos+length > len(out) {
			return corrupt()
		}
		copyMatch(out, pos, dist, length)
		pos += length
	}
	if pos != len(out) {
		return corrupt()
	}
	return nil
}

// readTrees parses the code-length section into d.lens: the literal-length
// lengths followed by the distance lengths.
func (d *blockDecoder) readTrees(off int64) (numLit, numDist int, err error) {
	br := &d.br
	corrupt := func() error { return CorruptInputError(off + br.bytesUsed()) }

	v, ok := br.readBits(5)
	if !ok {
		return 0, 0, corrupt()
	}
	numLit = 257 + int(v)
	if numLit > numLitSym {
		return 0, 0, corrupt()
	}
	v, ok = br.readBits(5)
	if !ok {
		return 0, 0, corrupt()
	}
	numDist = 1 + int(v)
	if numDist > numDistSym {
		return 0, 0, corrupt()
	}
	v, ok = br.readBits(4)
	if !ok {
		return 0, 0, corrupt()
	}
	numClen := 4 + int(v)

	var clenLen [numClenSym]uint8
	for i := 0; i < numClen; i++ {
		l, ok := br.readBits(3)
		if !ok {
			return 0, 0, corrupt()
		}
		clenLen[clenOrder[i]] = uint8(l)
	}
	if !d.clen.init(clenLen[:]) {
		return 0, 0, corrupt()
	}

	total := numLit + numDist
	for i := 0; i < total; {
		x, ok := d.clen.decode(br)
		if !ok {
			return 0, 0, corrupt()
		}
		if x < 16 {
			d.lens[i] = uint8(x)
			i++
			continue
		}
		var rep int
		var nb uint
		var b uint8
		switch x {
		case 16:
			if i == 0 {
				return 0, 0, corrupt()
			}
			rep, nb, b = 3, 2, d.lens[i-1]
		case 17:
			rep, nb, b = 3, 3, 0
		default: // 18
			rep, nb, b = 11, 7, 0
		}
		extra, ok := br.readBits(nb)
		if !ok {
			return 0, 0, corrupt()
		}
		rep += int(extra)
		if i+rep > total {
			return 0, 0, corrupt()
		}
		for j := 0; j < rep; j++ {
			d.lens[i] = b
			i++
		}
	}
	return numLit, numDist, nil
}

// copyMatch replays one back-reference: out[pos+k] = out[pos-dist+k] for
// k in [0,length). The caller has validated dist and length.
func copyMatch(out []byte, pos, dist, length int) {
	if dist == 1 {
		// Run-length expansion of the previous byte.
		b := out[pos-1]
		tail := out[pos : pos+length]
		for i := range tail {
			tail[i] = b
		}
		return
	}
	if dist >= length {
		copy(out[pos:pos+length], out[pos-dist:])
		return
	}
	// Self-referential run: copy forward in dist-sized chunks so bytes
	// written earlier in this match feed the later chunks.
	for length > 0 {
		n := copy(out[pos:pos+length], out[pos-dist:pos])
		pos += n
		length -= n
	}
}
