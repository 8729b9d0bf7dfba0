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

package queryhash

// ValueType is the runtime storage class of a column value.
type ValueType int

const (
	// Null is the SQL NULL.
	Null ValueType = iota
	// Integer is a 64-bit signed integer.
	Integer
	// Float is a 64-bit IEEE-754 floating point number.
	Float
	// Text is an UTF-8 string.
	Text
	// Blob is an opaque byte string.
	Blob
)

func (t ValueType) String() string {
	switch t {
	case Null:
		return "NULL"
	case Integer:
		return "INTEGER"
	case Float:
		return "REAL"
	case Text:
		return "TEXT"
	case Blob:
		return "BLOB"
	}
	return "Unknown"
}

// Value is a typed column value as produced by an Engine.
type Value struct {
	Type  ValueType
	Int   int64
	Float float64
	Bytes []byte
}

// NullValue returns a NULL value.
func NullValue() Value { return Value{Type: Null} }

// IntegerValue returns an INTEGER value.
func IntegerValue(v int64) Value { return Value{Type: Integer, Int: v} }

// FloatValue returns a REAL value.
func FloatValue(v float64) Value { return Value{Type: Float, Float: v} }

// TextValue returns a TEXT value.
func TextValue(s string) Value { return Value{Type: Text, Bytes: []byte(s)} }

// BlobValue returns a BLOB value.
func BlobValue(b []byte) Value { return Value{Type: Blob, Bytes: b} }
