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

// Sum returns the SHA-3 digest of data with the given size in bits. A zero
// size selects DefaultSize.
func Sum(bits int, data []byte) ([]byte, error) {
	h, err := New(bits)
	if err != nil {
		return nil, err
	}
	h.Write(data)
	return h.Final(), nil
}

// Sum224 returns the SHA3-224 digest of data.
func Sum224(data []byte) (digest [28]byte) {
	h := New224()
	h.Write(data)
	copy(digest[:], h.Final())
	return
}

// Sum256 returns the SHA3-256 digest of data.
func Sum256(data []byte) (digest [32]byte) {
	h := New256()
	h.Write(data)
	copy(digest[:], h.Final())
	return
}

// Sum384 returns the SHA3-384 digest of data.
func Sum384(data []byte) (digest [48]byte) {
	h := New384()
	h.Write(data)
	copy(digest[:], h.Final())
	return
}

// Sum512 returns the SHA3-512 digest of data.
func Sum512(data []byte) (digest [64]byte) {
	h := New512()
	h.Write(data)
	copy(digest[:], h.Final())
	return
}
