/*
 * Copyright 2019 The CovenantSQL Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sha3

import "encoding/binary"

// sponge owns a Keccak state and the number of bytes absorbed into the
// current block. n never rests at rate: filling the block permutes the state
// and resets n to zero.
type sponge struct {
	a    state
	rate int
	n    int
}

func (s *sponge) init(rate int) {
	s.a = state{}
	s.rate = rate
	s.n = 0
}

// absorb XORs p into the state, permuting whenever a block is filled.
func (s *sponge) absorb(p []byte) {
	for len(p) > 0 {
		if s.n&7 == 0 && len(p) >= 8 {
			// Word aligned. Every supported rate is a multiple of 8, so a word
			// never crosses the end of a block.
			s.a[s.n>>3] ^= binary.LittleEndian.Uint64(p)
			s.n += 8
			p = p[8:]
			if s.n == s.rate {
				s.permute()
			}
			continue
		}
		s.absorbByte(p[0])
		p = p[1:]
	}
}

func (s *sponge) absorbByte(v byte) {
	s.a.xorByte(s.n, v)
	s.n++
	if s.n == s.rate {
		s.permute()
	}
}

func (s *sponge) permute() {
	keccakF1600(&s.a)
	s.n = 0
}

// squeeze copies the leading len(out) bytes of the state into out.
func (s *sponge) squeeze(out []byte) {
	for i := range out {
		out[i] = s.a.byteAt(i)
	}
}
