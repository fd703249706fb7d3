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
	"github.com/cespare/xxhash/v2"
)

// A token is a literal byte or a back-reference. The end-of-block symbol is
// emitted by the block encoder, not the tokenizer.
//
// Layout: bit 31 set marks a match, with the distance in bits 8-23 and
// length-minMatch in bits 0-7. A literal is just the byte value.
type token uint32

const tokenMatch = 1 << 31

func literalToken(b byte) token { return token(b) }

func matchToken(length, dist int) token {
	return tokenMatch | token(dist)<<8 | token(length-minMatch)
}

func (t token) isMatch() bool { return t&tokenMatch != 0 }
func (t token) literal() byte { return byte(t) }
func (t token) length() int   { return int(t&0xff) + minMatch }
func (t token) dist() int     { return int(t>>8) & 0xffff }

const (
	hashBits = 15
	hashSize = 1 << hashBits
	hashMask = hashSize - 1
)

// A matchFinder is a hash chain over one block's window: head holds the most
// recent position of each 3-byte hash bucket and prev links each inserted
// position to the previous one in its bucket. Positions are block-local, so
// matches never reach across a block boundary. State is reset per block; the
// backing arrays are retained.
type matchFinder struct {
	win  []byte
	head []int32
	prev []int32
}

func (m *matchFinder) reset(win []byte) {
	if m.head == nil {
		m.head = make([]int32, hashSize)
	}
	for i := range m.head {
		m.head[i] = -1
	}
	if cap(m.prev) < len(win) {
		m.prev = make([]int32, len(win))
	}
	m.prev = m.prev[:len(win)]
	m.win = win
}

func (m *matchFinder) hash(p int) uint32 {
	return uint32(xxhash.Sum64(m.win[p:p+3])) & hashMask
}

func (m *matchFinder) insert(p int) {
	h := m.hash(p)
	m.prev[p] = m.head[h]
	m.head[h] = int32(p)
}

// findMatch returns the longest match for the bytes at p against earlier
// window positions, walking at most maxChain candidates. The chain runs from
// most recent to oldest, so of equal-length candidates the nearest (cheapest
// in distance extra bits) wins. A zero length means no usable match.
func (m *matchFinder) findMatch(p, maxChain int) (length, dist int) {
	win := m.win
	// The final minMatch-1 bytes of the window are always literals, so no
	// match reaches into them.
	maxLen := len(win) - (minMatch - 1) - p
	if maxLen > maxMatch {
		maxLen = maxMatch
	}
	if maxLen < minMatch {
		return 0, 0
	}

	limit := p - maxDistance
	if limit < 0 {
		limit = 0
	}

	q := m.head[m.hash(p)]
	for chain := 0; q >= int32(limit) && chain < maxChain; chain++ {
		c := int(q)
		// Cheap rejects: the candidate must beat the current best, so
		// its byte at the current best length has to match first.
		if length > 0 && win[c+length] != win[p+length] {
			q = m.prev[c]
			continue
		}
		n := matchLen(win[c:], win[p:p+maxLen])
		if n > length {
			length = n
			dist = p - c
			if n == maxLen {
				break
			}
		}
		q = m.prev[c]
	}
	if length < minMatch {
		return 0, 0
	}
	return length, dist
}

func matchLen(a, b []byte) int {
	for i, c := range b {
		if a[i] != c {
			return i
		}
	}
	return len(b)
}

// tokenize factorizes the window greedily: at every position take the
// longest match of at least minMatch bytes, else a literal. Interior match
// positions are inserted into the chain too, which costs a little encode time
// and buys later matches. The final two bytes are never part of a match and
// always come out as literals.
func tokenize(m *matchFinder, win []byte, maxChain int, tokens []token) []token {
	tokens = tokens[:0]
	m.reset(win)

	p := 0
	for p < len(win) {
		length, dist := 0, 0
		if p+minMatch <= len(win) {
			length, dist = m.findMatch(p, maxChain)
		}
		if length >= minMatch {
			tokens = append(tokens, matchToken(length, dist))
			end := p + length
			for ; p < end && p+minMatch <= len(win); p++ {
				m.insert(p)
			}
			p = end
		} else {
			if p+minMatch <= len(win) {
				m.insert(p)
			}
			tokens = append(tokens, literalToken(win[p]))
			p++
		}
	}
	return tokens
}
