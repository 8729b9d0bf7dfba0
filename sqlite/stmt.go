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
	sqlite3 "modernc.org/sqlite/lib"
)

// ColumnType is the storage class of a value.
type ColumnType int

// Storage classes.
const (
	TypeInteger ColumnType = sqlite3.SQLITE_INTEGER
	TypeFloat   ColumnType = sqlite3.SQLITE_FLOAT
	TypeText    ColumnType = sqlite3.SQLITE_TEXT
	TypeBlob    ColumnType = sqlite3.SQLITE_BLOB
	TypeNull    ColumnType = sqlite3.SQLITE_NULL
)

// Stmt is a compiled statement. It must be finalized once done with.
type Stmt struct {
	conn *Conn
	ptr  uintptr
}

// Step advances to the next row. It returns false once the statement has
// run to completion.
func (s *Stmt) Step() (bool, error) {
	switch rc := sqlite3.Xsqlite3_step(s.conn.tls, s.ptr); rc {
	case sqlite3.SQLITE_ROW:
		return true, nil
	case sqlite3.SQLITE_DONE:
		return false, nil
	default:
		err := s.conn.lastError(rc)
		sqlite3.Xsqlite3_reset(s.conn.tls, s.ptr)
		return false, err
	}
}

func (s *Stmt) exhaust() error {
	for {
		hasRow, err := s.Step()
		if err != nil || !hasRow {
			return err
		}
	}
}

// ReadOnly reports whether the statement makes no direct change to the
// database file.
func (s *Stmt) ReadOnly() bool {
	return sqlite3.Xsqlite3_stmt_readonly(s.conn.tls, s.ptr) != 0
}

// ColumnCount returns the number of result columns.
func (s *Stmt) ColumnCount() int {
	return int(sqlite3.Xsqlite3_column_count(s.conn.tls, s.ptr))
}

// ColumnType returns the storage class of column col in the current row.
func (s *Stmt) ColumnType(col int) ColumnType {
	return ColumnType(sqlite3.Xsqlite3_column_type(s.conn.tls, s.ptr, int32(col)))
}

// ColumnInt64 returns column col as an integer.
func (s *Stmt) ColumnInt64(col int) int64 {
	return sqlite3.Xsqlite3_column_int64(s.conn.tls, s.ptr, int32(col))
}

// ColumnFloat returns column col as a float.
func (s *Stmt) ColumnFloat(col int) float64 {
	return sqlite3.Xsqlite3_column_double(s.conn.tls, s.ptr, int32(col))
}

// ColumnText returns column col as text.
func (s *Stmt) ColumnText(col int) string {
	p := sqlite3.Xsqlite3_column_text(s.conn.tls, s.ptr, int32(col))
	return goText(p, sqlite3.Xsqlite3_column_bytes(s.conn.tls, s.ptr, int32(col)))
}

// ColumnBlob returns a copy of column col as bytes.
func (s *Stmt) ColumnBlob(col int) []byte {
	p := sqlite3.Xsqlite3_column_blob(s.conn.tls, s.ptr, int32(col))
	return goBlob(p, sqlite3.Xsqlite3_column_bytes(s.conn.tls, s.ptr, int32(col)))
}

// Finalize releases the statement.
func (s *Stmt) Finalize() error {
	if s.conn == nil {
		return nil
	}
	c := s.conn
	s.conn = nil
	if rc := sqlite3.Xsqlite3_finalize(c.tls, s.ptr); rc != sqlite3.SQLITE_OK {
		return c.lastError(rc)
	}
	return nil
}
