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
	"testing"
)

func TestCopyMatchOverlap(t *testing.T) {
	// Literal "ab" then a self-referential dist-2 match.
	out := make([]byte, 14)
	out[0], out[1] = 'a', 'b'
	copyMatch(out, 2, 2, 12)
	if want := "ababababababab"; string(out) != want {
		t.Errorf("dist-2 overlap = %q, want %q", out, want)
	}

	// Literal "Q" then a dist-1 run.
	out = make([]byte, 6)
	out[0] = 'Q'
	copyMatch(out, 1, 1, 5)
	if want := "QQQQQQ"; string(out) != want {
		t.Errorf("dist-1 run = %q, want %q", out, want)
	}

	// Non-overlapping copy.
	out = append([]byte("0123456789"), make([]byte, 4)...)
	copyMatch(out, 10, 10, 4)
	if want := "01234567890123"; string(out) != want {
		t.Errorf("plain copy = %q, want %q", out, want)
	}

	// Overlap where dist is neither 1 nor >= length.
	out = append([]byte("abc"), make([]byte, 7)...)
	copyMatch(out, 3, 3, 7)
	if want := "abcabcabca"; string(out) != want {
		t.Errorf("dist-3 overlap = %q, want %q", out, want)
	}
}

// buildPayload assembles a Huffman block payload for an arbitrary token
// stream, sidestepping the tokenizer so tests can present the decoder with
// streams a well-behaved encoder would never emit.
func buildPayload(tokens []token) []byte {
	e := newBlockEncoder(1)
	e.tokens = append(e.tokens, tokens...)

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
	return append([]byte(nil), e.bw.bytes()...)
}

func decodePayload(payload []byte, rawSize int) ([]byte, error) {
	out := make([]byte, rawSize)
	err := new(blockDecoder).decode(payload, out, 0)
	return out, err
}

func TestBlockPayloadRoundTrip(t *testing.T) {
	tokens := []token{
		literalToken('h'), literalToken('i'), literalToken('!'),
		literalToken('h'), literalToken('i'),
		matchToken(5, 5),
		matchToken(258, 1),
	}
	out, err := decodePayload(buildPayload(tokens), 5+5+258)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte("hi!hihi!hi"), bytes.Repeat([]byte{'i'}, 258)...)
	if !bytes.Equal(out, want) {
		t.Errorf("decoded %q, want %q", out, want)
	}
}

func TestBlockDecodeDistanceTooFar(t *testing.T) {
	// A match whose distance reaches before the start of the block.
	tokens := []token{
		literalToken('a'),
		matchToken(3, 2),
	}
	_, err := decodePayload(buildPayload(tokens), 4)
	if _, ok := err.(CorruptInputError); !ok {
		t.Errorf("got %v, want CorruptInputError", err)
	}
}

func TestBlockDecodeOvershoot(t *testing.T) {
	// The token stream produces more bytes than the recorded raw size.
	tokens := []token{
		literalToken('a'),
		matchToken(10, 1),
	}
	_, err := decodePayload(buildPayload(tokens), 5)
	if _, ok := err.(CorruptInputError); !ok {
		t.Errorf("overshoot: got %v, want CorruptInputError", err)
	}

	// Literals alone can overshoot too.
	tokens = []token{literalToken('a'), literalToken('b')}
	_, err = decodePayload(buildPayload(tokens), 1)
	if _, ok := err.(CorruptInputError); !ok {
		t.Errorf("literal overshoot: got %v, want CorruptInputError", err)
	}
}

func TestBlockDecodeUndershoot(t *testing.T) {
	// End-of-block arrives before the recorded raw size is reached.
	tokens := []token{literalToken('a')}
	_, err := decodePayload(buildPayload(tokens), 2)
	if _, ok := err.(CorruptInputError); !ok {
		t.Errorf("got %v, want CorruptInputError", err)
	}
}

func TestBlockDecodeTruncatedPayload(t *testing.T) {
	tokens := []token{
		literalToken('x'), literalToken('y'), literalToken('z'),
		matchToken(200, 3),
	}
	payload := buildPayload(tokens)
	for i := 0; i < len(payload); i++ {
		if _, err := decodePayload(payload[:i], 203); err == nil {
			t.Fatalf("truncated payload at %d decoded cleanly", i)
		}
	}
}

func TestBlockDecodeEmptyPayload(t *testing.T) {
	if _, err := decodePayload(nil, 1); err == nil {
		t.Error("empty payload decoded cleanly")
	}
}

// The encoder falls back to a stored block whenever entropy coding cannot
// beat the raw bytes.
func TestEncodeStoredFallback(t *testing.T) {
	win := randomData(512, 6)
	blk := newBlockEncoder(128).encode(nil, win, true)
	if typ := int(blk[0]>>blockTypeShift) & blockTypeMask; typ != blockStored {
		t.Fatalf("block type = %d, want stored", typ)
	}
	if !bytes.Equal(blk[5:], win) {
		t.Error("stored block does not carry the raw bytes")
	}
}

func TestEncodeHuffmanChosen(t *testing.T) {
	win := bytes.Repeat([]byte("entropy "), 512)
	blk := newBlockEncoder(128).encode(nil, win, false)
	if typ := int(blk[0]>>blockTypeShift) & blockTypeMask; typ != blockHuffman {
		t.Fatalf("block type = %d, want huffman", typ)
	}
	if blk[0]&flagLastBlock != 0 {
		t.Error("last-block flag set on a non-final block")
	}
}
