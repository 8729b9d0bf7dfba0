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

// Package sha3 implements the fixed-output SHA-3 hash functions (FIPS 202)
// with output sizes of 224, 256, 384 and 512 bits.
//
// A Hasher follows a strict lifecycle: it is created by New, fed by any
// number of Write calls and finished by exactly one Final call. Writing to a
// finished Hasher is a programming error and panics.
//
// Every byte exchanged with the sponge is mapped onto the 64-bit lanes by
// shifts, so digests do not depend on the byte order of the host.
package sha3
