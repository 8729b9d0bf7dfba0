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

// state is the 1600-bit Keccak state as 25 lanes, lane (x, y) at index 5*y+x.
//
// Byte i of the state lives in lane i/8 at bit offset 8*(i%8). The mapping is
// defined arithmetically, never by reinterpreting memory.
type state [25]uint64

// byteAt returns byte i of the state.
func (a *state) byteAt(i int) byte {
	return byte(a[i>>3] >> (uint(i&7) << 3))
}

// xorByte XORs v into byte i of the state.
func (a *state) xorByte(i int, v byte) {
	a[i>>3] ^= uint64(v) << (uint(i&7) << 3)
}
