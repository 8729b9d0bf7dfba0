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


package sqlite

import (
	"testing"

	"github.com/fortytw2/leaktest"
	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConn(t *testing.T) {
	defer leaktest.Check(t)()

	Convey("raw connection", t, func() {
		conn, err := OpenConn(":memory:", OpenReadWrite|OpenCreate|OpenMemory)
		So(err, ShouldBeNil)
		Reset(func() {
			_ = conn.Close()
		})

		Convey("prepare reports the trailing bytes", func() {
			stmt, trailing, err := conn.PrepareTransient("SELECT 1; SELECT 2")
			So(err, ShouldBeNil)
			So(stmt, ShouldNotBeNil)
			So(trailing, ShouldEqual, len(" SELECT 2"))
			So(stmt.Finalize(), ShouldBeNil)
			So(stmt.Finalize(), ShouldBeNil)

			stmt, trailing, err = conn.PrepareTransient(" -- only a comment")
			So(err, ShouldBeNil)
			So(stmt, ShouldBeNil)
			So(trailing, ShouldEqual, 0)
		})
		Convey("errors carry the bare sqlite message", func() {
			_, _, err := conn.PrepareTransient("SELECT * FROM nowhere")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "no such table: nowhere")
			serr, ok := err.(*Error)
			So(ok, ShouldBeTrue)
			So(serr.Code, ShouldEqual, 1)

			err = conn.Exec("CREATE TABLE a (x); CREATE TABLE a (x)")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "table a already exists")
		})
		Convey("exec runs every statement", func() {
			So(conn.Exec("CREATE TABLE a (x); INSERT INTO a VALUES (1); ; INSERT INTO a VALUES (2);"), ShouldBeNil)
			stmt, _, err := conn.PrepareTransient("SELECT sum(x), typeof(sum(x)) FROM a")
			So(err, ShouldBeNil)
			hasRow, err := stmt.Step()
			So(err, ShouldBeNil)
			So(hasRow, ShouldBeTrue)
			So(stmt.ColumnCount(), ShouldEqual, 2)
			So(stmt.ColumnType(0), ShouldEqual, TypeInteger)
			So(stmt.ColumnInt64(0), ShouldEqual, int64(3))
			So(stmt.ColumnText(1), ShouldEqual, "integer")
			hasRow, err = stmt.Step()
			So(err, ShouldBeNil)
			So(hasRow, ShouldBeFalse)
			So(stmt.Finalize(), ShouldBeNil)
		})
		Convey("function errors fail the calling statement", func() {
			So(conn.CreateFunction("boom", 1, FuncDeterministic, func(args []Value) ([]byte, error) {
				return nil, errors.New("boom failed")
			}), ShouldBeNil)
			stmt, _, err := conn.PrepareTransient("SELECT boom(1)")
			So(err, ShouldBeNil)
			hasRow, err := stmt.Step()
			So(hasRow, ShouldBeFalse)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "boom failed")
			So(stmt.Finalize(), ShouldBeNil)
		})
		Convey("function arguments keep their storage class", func() {
			var got []ColumnType
			So(conn.CreateFunction("arg_types", -1, 0, func(args []Value) ([]byte, error) {
				got = got[:0]
				for _, a := range args {
					got = append(got, a.Type())
				}
				if len(args) == 0 {
					return nil, nil
				}
				if args[0].Type() == TypeBlob {
					return args[0].Blob(), nil
				}
				return []byte(args[0].Text()), nil
			}), ShouldBeNil)

			out, isNull, err := queryBlob(conn, "SELECT arg_types(x'00ff', 'a', 1, 1.5, NULL)")
			So(err, ShouldBeNil)
			So(isNull, ShouldBeFalse)
			So(out, ShouldResemble, []byte{0, 0xff})
			So(got, ShouldResemble, []ColumnType{TypeBlob, TypeText, TypeInteger, TypeFloat, TypeNull})

			out, _, err = queryBlob(conn, "SELECT arg_types('a'||char(0)||'b')")
			So(err, ShouldBeNil)
			So(out, ShouldResemble, []byte{'a', 0, 'b'})

			_, isNull, err = queryBlob(conn, "SELECT arg_types()")
			So(err, ShouldBeNil)
			So(isNull, ShouldBeTrue)

			out, isNull, err = queryBlob(conn, "SELECT arg_types(x'')")
			So(err, ShouldBeNil)
			So(isNull, ShouldBeFalse)
			So(out, ShouldBeEmpty)
		})
	})
	Convey("open failures and double close", t, func() {
		_, err := OpenConn("/nonexistent/dir/x.db", OpenReadWrite)
		So(err, ShouldNotBeNil)

		conn, err := OpenConn(":memory:", OpenReadWrite|OpenCreate|OpenMemory)
		So(err, ShouldBeNil)
		So(conn.Close(), ShouldBeNil)
		So(conn.Close(), ShouldNotBeNil)
	})
}
