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
	"github.com/CovenantSQL/shathree/queryhash"
)

// Engine runs statements on a single sqlite connection.
type Engine struct {
	conn *Conn
}

// NewEngine returns an Engine bound to conn.
func NewEngine(conn *Conn) *Engine {
	return &Engine{conn: conn}
}

// Prepare implements queryhash.Engine. Blanks, comments and bare
// terminators compile to no statement.
func (e *Engine) Prepare(query string) (queryhash.Statement, string, error) {
	stmt, trailing, err := e.conn.PrepareTransient(query)
	if err != nil {
		return nil, "", err
	}
	end := len(query) - trailing
	if stmt == nil {
		return nil, query[end:], nil
	}
	return &Statement{
		stmt: stmt,
		sql:  query[:end],
	}, query[end:], nil
}

// Statement is a compiled sqlite statement.
type Statement struct {
	stmt *Stmt
	sql  string
}

// SQL returns the statement text as compiled, leading blanks included.
func (s *Statement) SQL() string {
	return s.sql
}

// ReadOnly reports whether the statement leaves the database file untouched.
func (s *Statement) ReadOnly() (bool, error) {
	return s.stmt.ReadOnly(), nil
}

// Step advances the statement to the next row.
func (s *Statement) Step() (bool, error) {
	return s.stmt.Step()
}

// ColumnCount returns the number of result columns.
func (s *Statement) ColumnCount() int {
	return s.stmt.ColumnCount()
}

// Column returns column i of the current row with its runtime storage class.
func (s *Statement) Column(i int) queryhash.Value {
	switch s.stmt.ColumnType(i) {
	case TypeInteger:
		return queryhash.IntegerValue(s.stmt.ColumnInt64(i))
	case TypeFloat:
		return queryhash.FloatValue(s.stmt.ColumnFloat(i))
	case TypeText:
		return queryhash.TextValue(s.stmt.ColumnText(i))
	case TypeBlob:
		return queryhash.BlobValue(s.stmt.ColumnBlob(i))
	default:
		return queryhash.NullValue()
	}
}

// Finalize releases the statement.
func (s *Statement) Finalize() error {
	return s.stmt.Finalize()
}
