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

// Length codes 257..285 partition the match lengths 3..258: length code
// 257+i covers baseLength[i] .. baseLength[i]+(1<<extraLengthBits[i])-1.
var baseLength = [29]uint16{
	3, 4, 5, 6, 7, 8, 9, 10,
	11, 13, 15, 17, 19, 23, 27, 31,
	35, 43, 51, 59, 67, 83, 99, 115,
	131, 163, 195, 227, 258,
}

var extraLengthBits = [29]uint8{
	0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4,
	5, 5, 5, 5, 0,
}

// Distance codes 0..29 partition the distances 1..32768 the same way.
var baseDist = [30]uint16{
	1, 2, 3, 4, 5, 7, 9, 13,
	17, 25, 33, 49, 65, 97, 129, 193,
	257, 385, 513, 769, 1025, 1537, 2049, 3073,
	4097, 6145, 8193, 12289, 16385, 24577,
}

var extraDistBits = [30]uint8{
	0, 0, 0, 0, 1, 1, 2, 2,
	3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10,
	11, 11, 12, 12, 13, 13,
}

// Encoder-side lookups derived from the base tables above.
var (
	// lengthCode maps length-minMatch to its length code index 0..28.
	lengthCode [maxMatch - minMatch + 1]uint8

	// distCodeLo maps dist-1 in 0..255 directly; larger distances index
	// distCodeHi by (dist-1)>>7.
	distCodeLo [256]uint8
	distCodeHi [256]uint8
)

func init() {
	for i, base := range baseLength {
		n := 1 << extraLengthBits[i]
		for j := 0; j < n; j++ {
			l := int(base) + j - minMatch
			if l < len(lengthCode) {
				lengthCode[l] = uint8(i)
			}
		}
	}
	// Length 258 is covered both by code 284's widest extra value and by
	// the dedicated code 285; the dedicated code wins (zero extra bits).
	lengthCode[maxMatch-minMatch] = 28

	for i, base := range baseDist {
		n := 1 << extraDistBits[i]
		for j := 0; j < n; j++ {
			d := int(base) + j - 1
			if d < 256 {
				distCodeLo[d] = uint8(i)
			} else {
				distCodeHi[d>>7] = uint8(i)
			}
		}
	}
}

func distanceCode(dist int) int {
	if d := dist - 1; d < 256 {
		return int(distCodeLo[d])
	} else {
		return int(distCodeHi[d>>7])
	}
}
