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

// Package queryhash computes a reproducible SHA-3 digest of the results of a
// sequence of read-only SQL statements.
//
// Statements and their rows are serialized into a canonical byte stream
// before being hashed:
//
//	S<n>:<sql>    once per statement, <n> is the byte length of <sql>
//	R             once per result row
//	N             NULL column
//	I<8 bytes>    INTEGER column, two's complement, most significant byte first
//	F<8 bytes>    REAL column, IEEE-754 bits, most significant byte first
//	T<n>:<text>   TEXT column as UTF-8
//	B<n>:<bytes>  BLOB column
//
// Lengths are decimal ASCII and segments are concatenated with no other
// delimiter. The stream layout is a stable contract: changing it invalidates
// every digest recorded before.
package queryhash
