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
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/CovenantSQL/shathree/crypto/sha3"
	"github.com/CovenantSQL/shathree/utils/log"
)

type fakeResult struct {
	readOnly bool
	columns  int
	rows     [][]Value
	stepErr  error
}

// fakeEngine splits statements on ';' and serves canned results keyed by the
// trimmed statement text.
type fakeEngine struct {
	results   map[string]*fakeResult
	prepared  int
	finalized int
}

type fakeStmt struct {
	engine *fakeEngine
	sql    string
	result *fakeResult
	row    int
}

func (e *fakeEngine) Prepare(query string) (Statement, string, error) {
	var text, tail string
	if idx := strings.IndexByte(query, ';'); idx >= 0 {
		text, tail = query[:idx+1], query[idx+1:]
	} else {
		text = query
	}
	key := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), ";"))
	if key == "" {
		return nil, tail, nil
	}
	r, ok := e.results[key]
	if !ok {
		return nil, "", errors.New("no such table: " + key)
	}
	e.prepared++
	return &fakeStmt{engine: e, sql: text, result: r, row: -1}, tail, nil
}

func (s *fakeStmt) SQL() string             { return s.sql }
func (s *fakeStmt) ReadOnly() (bool, error) { return s.result.readOnly, nil }
func (s *fakeStmt) ColumnCount() int        { return s.result.columns }
func (s *fakeStmt) Column(i int) Value      { return s.result.rows[s.row][i] }

func (s *fakeStmt) Step() (bool, error) {
	s.row++
	if s.row < len(s.result.rows) {
		return true, nil
	}
	if s.result.stepErr != nil {
		return false, s.result.stepErr
	}
	return false, nil
}

func (s *fakeStmt) Finalize() error {
	s.engine.finalized++
	return nil
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		results: map[string]*fakeResult{
			"SELECT 1": {
				readOnly: true,
				columns:  1,
				rows:     [][]Value{{IntegerValue(1)}},
			},
			"SELECT 'x'": {
				readOnly: true,
				columns:  1,
				rows:     [][]Value{{TextValue("x")}},
			},
			"SELECT * FROM t": {
				readOnly: true,
				columns:  5,
				rows: [][]Value{
					{NullValue(), IntegerValue(-1), FloatValue(1.5), TextValue(""), BlobValue([]byte{0, 1})},
					{NullValue(), IntegerValue(256), FloatValue(math.Copysign(0, -1)), TextValue("héllo"), BlobValue(nil)},
				},
			},
			"SELECT * FROM empty": {
				readOnly: true,
				columns:  3,
			},
			"SELECT * FROM broken": {
				readOnly: true,
				columns:  1,
				rows:     [][]Value{{IntegerValue(7)}},
				stepErr:  errors.New("database disk image is malformed"),
			},
			"INSERT INTO t VALUES(1)": {
				readOnly: false,
			},
		},
	}
}

func encodeString(e Engine, query string) (string, Stats, error) {
	var buf bytes.Buffer
	stats, err := Encode(e, query, &buf)
	return buf.String(), stats, err
}

func TestEncoder(t *testing.T) {
	Convey("encoder segments", t, func() {
		var buf bytes.Buffer
		enc := NewEncoder(&buf)

		Convey("statement header carries the decimal byte length", func() {
			So(enc.Statement("SELECT 'é'"), ShouldBeNil)
			So(buf.String(), ShouldEqual, "S11:SELECT 'é'")
			So(enc.Stats().Statements, ShouldEqual, 1)
			So(enc.Stats().Bytes, ShouldEqual, int64(15))
		})
		Convey("empty statement text still gets a header", func() {
			So(enc.Statement(""), ShouldBeNil)
			So(buf.String(), ShouldEqual, "S0:")
		})
		Convey("row marker", func() {
			So(enc.Row(), ShouldBeNil)
			So(enc.Row(), ShouldBeNil)
			So(buf.String(), ShouldEqual, "RR")
			So(enc.Stats().Rows, ShouldEqual, 2)
		})
		Convey("null", func() {
			So(enc.Value(NullValue()), ShouldBeNil)
			So(buf.Bytes(), ShouldResemble, []byte("N"))
		})
		Convey("integers are most significant byte first", func() {
			So(enc.Value(IntegerValue(1)), ShouldBeNil)
			So(enc.Value(IntegerValue(-2)), ShouldBeNil)
			So(buf.Bytes(), ShouldResemble, []byte{
				'I', 0, 0, 0, 0, 0, 0, 0, 1,
				'I', 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
			})
		})
		Convey("floats are IEEE-754 bits most significant byte first", func() {
			So(enc.Value(FloatValue(1.0)), ShouldBeNil)
			So(buf.Bytes(), ShouldResemble, []byte{'F', 0x3f, 0xf0, 0, 0, 0, 0, 0, 0})
		})
		Convey("text and blob carry their byte length", func() {
			So(enc.Value(TextValue("abc")), ShouldBeNil)
			So(enc.Value(BlobValue([]byte{0xde, 0xad})), ShouldBeNil)
			So(enc.Value(TextValue("")), ShouldBeNil)
			So(enc.Value(BlobValue(nil)), ShouldBeNil)
			So(buf.Bytes(), ShouldResemble, append([]byte("T3:abcB2:"), 0xde, 0xad, 'T', '0', ':', 'B', '0', ':'))
		})
		Convey("unknown types encode as null", func() {
			So(enc.Value(Value{Type: ValueType(42)}), ShouldBeNil)
			So(buf.String(), ShouldEqual, "N")
		})
	})
}

func TestEncode(t *testing.T) {
	log.Discard()

	Convey("canonical stream of a query", t, func() {
		e := newFakeEngine()

		Convey("two statements", func() {
			out, stats, err := encodeString(e, "SELECT 1; SELECT 'x';")
			So(err, ShouldBeNil)
			want := "S9:SELECT 1;" + "R" + "I\x00\x00\x00\x00\x00\x00\x00\x01" +
				"S12: SELECT 'x';" + "R" + "T1:x"
			So(out, ShouldEqual, want)
			So(stats.Statements, ShouldEqual, 2)
			So(stats.Rows, ShouldEqual, 2)
			So(stats.Bytes, ShouldEqual, int64(len(want)))
			So(e.finalized, ShouldEqual, e.prepared)
		})
		Convey("empty result sets only emit the header", func() {
			out, _, err := encodeString(e, "SELECT * FROM empty")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "S19:SELECT * FROM empty")
		})
		Convey("all storage classes in one table", func() {
			out, stats, err := encodeString(e, "SELECT * FROM t;")
			So(err, ShouldBeNil)
			So(stats.Rows, ShouldEqual, 2)
			var want bytes.Buffer
			want.WriteString("S16:SELECT * FROM t;")
			want.WriteString("R" + "N")
			want.Write([]byte{'I', 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
			want.Write([]byte{'F', 0x3f, 0xf8, 0, 0, 0, 0, 0, 0})
			want.WriteString("T0:")
			want.Write([]byte{'B', '2', ':', 0, 1})
			want.WriteString("R" + "N")
			want.Write([]byte{'I', 0, 0, 0, 0, 0, 0, 1, 0})
			want.Write([]byte{'F', 0x80, 0, 0, 0, 0, 0, 0, 0})
			want.WriteString("T6:héllo")
			want.WriteString("B0:")
			So(out, ShouldEqual, want.String())
		})
		Convey("blank statements are skipped", func() {
			out, stats, err := encodeString(e, " ; ;SELECT 1;;  ")
			So(err, ShouldBeNil)
			So(stats.Statements, ShouldEqual, 1)
			So(out, ShouldStartWith, "S9:SELECT 1;")
		})
		Convey("empty query hashes nothing", func() {
			out, stats, err := encodeString(e, "")
			So(err, ShouldBeNil)
			So(out, ShouldBeEmpty)
			So(stats, ShouldResemble, Stats{})
		})
		Convey("compile errors carry the remaining text", func() {
			out, _, err := encodeString(e, "SELECT 1; bogus; SELECT 'x';")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "error SQL statement [ bogus; SELECT 'x';]: no such table: bogus")
			ce, ok := err.(*QueryCompileError)
			So(ok, ShouldBeTrue)
			So(ce.SQL, ShouldEqual, " bogus; SELECT 'x';")
			So(errors.Cause(err).Error(), ShouldEqual, "no such table: bogus")
			So(out, ShouldStartWith, "S9:SELECT 1;")
		})
		Convey("writing statements abort", func() {
			_, _, err := encodeString(e, "SELECT 1; INSERT INTO t VALUES(1); SELECT 'x'")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "non-query: [ INSERT INTO t VALUES(1);]")
			_, ok := err.(*NonQueryError)
			So(ok, ShouldBeTrue)
			So(e.finalized, ShouldEqual, e.prepared)
		})
		Convey("step failures abort", func() {
			_, stats, err := encodeString(e, "SELECT * FROM broken")
			So(err, ShouldNotBeNil)
			So(errors.Cause(err).Error(), ShouldEqual, "database disk image is malformed")
			So(stats.Rows, ShouldEqual, 1)
			So(e.finalized, ShouldEqual, e.prepared)
		})
	})
}

func TestResultSetHasher(t *testing.T) {
	log.Discard()

	Convey("digest of a query", t, func() {
		e := newFakeEngine()
		const query = "SELECT 1; SELECT 'x';"
		stream, _, err := encodeString(e, query)
		So(err, ShouldBeNil)

		Convey("default size is 256", func() {
			h, err := New(e, 0)
			So(err, ShouldBeNil)
			So(h.Bits(), ShouldEqual, 256)
			digest, stats, err := h.Hash(query)
			So(err, ShouldBeNil)
			So(stats.Statements, ShouldEqual, 2)
			want := sha3.Sum256([]byte(stream))
			So(digest, ShouldResemble, want[:])
		})
		Convey("every supported size", func() {
			for _, bits := range []int{224, 256, 384, 512} {
				digest, err := HashQueries(e, query, bits)
				So(err, ShouldBeNil)
				So(digest, ShouldHaveLength, bits/8)
				want, err := sha3.Sum(bits, []byte(stream))
				So(err, ShouldBeNil)
				So(digest, ShouldResemble, want)
			}
		})
		Convey("deterministic across runs", func() {
			d1, err := HashQueries(e, query, 384)
			So(err, ShouldBeNil)
			d2, err := HashQueries(newFakeEngine(), query, 384)
			So(err, ShouldBeNil)
			So(d1, ShouldResemble, d2)
		})
		Convey("statement boundaries are part of the digest", func() {
			d1, err := HashQueries(e, "SELECT 1;", 256)
			So(err, ShouldBeNil)
			d2, err := HashQueries(e, "SELECT 1; ", 256)
			So(err, ShouldBeNil)
			d3, err := HashQueries(e, " SELECT 1;", 256)
			So(err, ShouldBeNil)
			So(d1, ShouldResemble, d2)
			So(d1, ShouldNotResemble, d3)
		})
		Convey("invalid sizes are rejected up front", func() {
			h, err := New(e, 128)
			So(h, ShouldBeNil)
			So(err, ShouldEqual, sha3.ErrInvalidSize)
			_, err = HashQueries(e, query, 1)
			So(err, ShouldEqual, sha3.ErrInvalidSize)
			So(e.prepared, ShouldEqual, 2)
		})
		Convey("errors produce no digest", func() {
			digest, err := HashQueries(e, "INSERT INTO t VALUES(1)", 256)
			So(digest, ShouldBeNil)
			So(err, ShouldHaveSameTypeAs, &NonQueryError{})
		})
	})
}
