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

import (
	"encoding/binary"
	"io"
	"math"
	"strconv"
)

const (
	tagStatement = 'S'
	tagRow       = 'R'
	tagNull      = 'N'
	tagInteger   = 'I'
	tagFloat     = 'F'
	tagText      = 'T'
	tagBlob      = 'B'
	lenSep       = ':'
)

// Stats counts what an Encoder has emitted.
type Stats struct {
	Statements int
	Rows       int
	Bytes      int64
}

// Encoder writes the canonical stream segments to an io.Writer.
type Encoder struct {
	w     io.Writer
	buf   []byte
	stats Stats
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w:   w,
		buf: make([]byte, 0, 32),
	}
}

// Stats returns the counters accumulated so far.
func (e *Encoder) Stats() Stats {
	return e.stats
}

// Statement writes the S<n>:<sql> header of a statement.
func (e *Encoder) Statement(sql string) (err error) {
	e.buf = appendPrefix(e.buf[:0], tagStatement, len(sql))
	if err = e.flush(); err != nil {
		return
	}
	if err = e.writeString(sql); err != nil {
		return
	}
	e.stats.Statements++
	return
}

// Row writes the row marker.
func (e *Encoder) Row() (err error) {
	e.buf = append(e.buf[:0], tagRow)
	if err = e.flush(); err != nil {
		return
	}
	e.stats.Rows++
	return
}

// Value writes a single column value.
func (e *Encoder) Value(v Value) (err error) {
	switch v.Type {
	case Integer:
		e.buf = appendUint64(append(e.buf[:0], tagInteger), uint64(v.Int))
	case Float:
		e.buf = appendUint64(append(e.buf[:0], tagFloat), math.Float64bits(v.Float))
	case Text:
		e.buf = appendPrefix(e.buf[:0], tagText, len(v.Bytes))
	case Blob:
		e.buf = appendPrefix(e.buf[:0], tagBlob, len(v.Bytes))
	default:
		e.buf = append(e.buf[:0], tagNull)
	}
	if err = e.flush(); err != nil {
		return
	}
	if v.Type == Text || v.Type == Blob {
		err = e.write(v.Bytes)
	}
	return
}

func (e *Encoder) flush() error {
	return e.write(e.buf)
}

func (e *Encoder) write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	n, err := e.w.Write(p)
	e.stats.Bytes += int64(n)
	return err
}

func (e *Encoder) writeString(s string) error {
	if sw, ok := e.w.(io.StringWriter); ok {
		if len(s) == 0 {
			return nil
		}
		n, err := sw.WriteString(s)
		e.stats.Bytes += int64(n)
		return err
	}
	return e.write([]byte(s))
}

// appendPrefix appends <tag><decimal n>:.
func appendPrefix(dst []byte, tag byte, n int) []byte {
	dst = append(dst, tag)
	dst = strconv.AppendInt(dst, int64(n), 10)
	return append(dst, lenSep)
}

func appendUint64(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}
