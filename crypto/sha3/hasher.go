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

import "hash"

// DefaultSize is the digest size in bits used when none is given.
const DefaultSize = 256

// Padding bytes of SHA-3: the domain bits 01 followed by the first pad bit,
// the final pad bit, and both of them sharing a single byte.
const (
	padStart byte = 0x06
	padEnd   byte = 0x80
	padBoth  byte = padStart | padEnd
)

var _ hash.Hash = (*Hasher)(nil)

// Hasher is an incremental SHA-3 computation. It is not safe for concurrent use.
type Hasher struct {
	sponge
	size      int
	finalized bool
	digest    []byte
}

// ValidSize reports whether bits is a supported digest size.
func ValidSize(bits int) error {
	switch bits {
	case 224, 256, 384, 512:
		return nil
	}
	return ErrInvalidSize
}

// New returns a Hasher producing digests of the given size in bits. A zero
// size selects DefaultSize.
func New(bits int) (*Hasher, error) {
	if bits == 0 {
		bits = DefaultSize
	}
	if err := ValidSize(bits); err != nil {
		return nil, err
	}
	return newHasher(bits), nil
}

// New224 returns a SHA3-224 Hasher.
func New224() *Hasher { return newHasher(224) }

// New256 returns a SHA3-256 Hasher.
func New256() *Hasher { return newHasher(256) }

// New384 returns a SHA3-384 Hasher.
func New384() *Hasher { return newHasher(384) }

// New512 returns a SHA3-512 Hasher.
func New512() *Hasher { return newHasher(512) }

func newHasher(bits int) *Hasher {
	h := &Hasher{size: bits}
	h.Reset()
	return h
}

// Write absorbs p. It never returns an error and panics after Final.
func (h *Hasher) Write(p []byte) (int, error) {
	if h.finalized {
		panic("sha3: write to hasher after Final")
	}
	h.absorb(p)
	return len(p), nil
}

// Final pads the message, permutes the state for the last time and returns
// the digest. It must be called at most once per Reset.
func (h *Hasher) Final() []byte {
	if h.finalized {
		panic("sha3: Final called twice")
	}
	h.finalized = true

	if h.n == h.rate-1 {
		h.absorbByte(padBoth)
	} else {
		h.absorbByte(padStart)
		// Bytes in between keep their absorbed content, which is what XORing
		// zero padding into them would leave.
		h.n = h.rate - 1
		h.absorbByte(padEnd)
	}

	h.digest = make([]byte, h.Size())
	h.squeeze(h.digest)
	return append([]byte(nil), h.digest...)
}

// Sum appends the digest of the data written so far to b. The receiver is
// left untouched: before Final it may keep absorbing, after Final the
// digest Final returned is appended.
func (h *Hasher) Sum(b []byte) []byte {
	if h.finalized {
		return append(b, h.digest...)
	}
	dup := *h
	return append(b, dup.Final()...)
}

// Reset zeroes the state and makes the Hasher writable again.
func (h *Hasher) Reset() {
	h.init((1600 - 2*h.size) / 8)
	h.finalized = false
	h.digest = nil
}

// Size returns the digest length in bytes.
func (h *Hasher) Size() int { return h.size / 8 }

// BlockSize returns the sponge rate in bytes.
func (h *Hasher) BlockSize() int { return h.rate }

// Bits returns the digest length in bits.
func (h *Hasher) Bits() int { return h.size }
