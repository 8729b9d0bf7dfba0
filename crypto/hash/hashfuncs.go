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

package hash

import (
	"github.com/CovenantSQL/shathree/crypto/sha3"
)

// SHA3B calculates the SHA3-256 digest of b.
func SHA3B(b []byte) []byte {
	d := sha3.Sum256(b)
	return d[:]
}

// SHA3D calculates the SHA-3 digest of b with the given size in bits.
func SHA3D(bits int, b []byte) (Digest, error) {
	d, err := sha3.Sum(bits, b)
	if err != nil {
		return nil, err
	}
	return Digest(d), nil
}
