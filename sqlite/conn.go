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
	"unsafe"

	"github.com/pkg/errors"
	"modernc.org/libc"
	"modernc.org/libc/sys/types"
	sqlite3 "modernc.org/sqlite/lib"
)

const ptrSize = types.Size_t(unsafe.Sizeof(uintptr(0)))

// OpenFlags are sqlite3_open_v2 flags.
type OpenFlags int32

// Open flags.
const (
	OpenReadOnly  OpenFlags = sqlite3.SQLITE_OPEN_READONLY
	OpenReadWrite OpenFlags = sqlite3.SQLITE_OPEN_READWRITE
	OpenCreate    OpenFlags = sqlite3.SQLITE_OPEN_CREATE
	OpenURI       OpenFlags = sqlite3.SQLITE_OPEN_URI
	OpenMemory    OpenFlags = sqlite3.SQLITE_OPEN_MEMORY
	openNoMutex   OpenFlags = sqlite3.SQLITE_OPEN_NOMUTEX
)

// Error is a failure reported by sqlite. Its text is the connection error
// message as sqlite3_errmsg returns it.
type Error struct {
	Code int
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// Conn is a single sqlite connection. A Conn must not be used by more than
// one goroutine at a time.
type Conn struct {
	tls *libc.TLS
	db  uintptr
}

// OpenConn opens the database at path, which may be an URI filename when
// OpenURI is set.
func OpenConn(path string, flags OpenFlags) (c *Conn, err error) {
	tls := libc.NewTLS()
	defer func() {
		if err != nil {
			tls.Close()
		}
	}()

	cpath, err := libc.CString(path)
	if err != nil {
		err = errors.Wrap(err, "allocate database path failed")
		return
	}
	defer libc.Xfree(tls, cpath)
	pdb, err := malloc(tls, ptrSize)
	if err != nil {
		return
	}
	defer libc.Xfree(tls, pdb)

	rc := sqlite3.Xsqlite3_open_v2(tls, cpath, pdb, int32(flags|openNoMutex), 0)
	c = &Conn{tls: tls, db: *(*uintptr)(unsafe.Pointer(pdb))}
	if rc != sqlite3.SQLITE_OK {
		err = c.lastError(rc)
		if c.db != 0 {
			sqlite3.Xsqlite3_close(tls, c.db)
		}
		c = nil
	}
	return
}

// Close closes the connection. Every statement must be finalized first.
func (c *Conn) Close() (err error) {
	if c.tls == nil {
		return errors.New("connection already closed")
	}
	if rc := sqlite3.Xsqlite3_close(c.tls, c.db); rc != sqlite3.SQLITE_OK {
		return errors.Wrap(c.lastError(rc), "close connection failed")
	}
	c.tls.Close()
	c.tls = nil
	c.db = 0
	return
}

// PrepareTransient compiles the first statement of query and reports how
// many bytes of query follow it. The statement is nil when that prefix holds
// only blanks, comments or a bare terminator.
func (c *Conn) PrepareTransient(query string) (stmt *Stmt, trailing int, err error) {
	cquery, err := libc.CString(query)
	if err != nil {
		err = errors.Wrap(err, "allocate statement text failed")
		return
	}
	defer libc.Xfree(c.tls, cquery)
	out, err := malloc(c.tls, 2*ptrSize)
	if err != nil {
		return
	}
	defer libc.Xfree(c.tls, out)

	pstmt, ptail := out, out+uintptr(ptrSize)
	if rc := sqlite3.Xsqlite3_prepare_v2(c.tls, c.db, cquery, int32(len(query)), pstmt, ptail); rc != sqlite3.SQLITE_OK {
		err = c.lastError(rc)
		return
	}
	trailing = len(query) - int(*(*uintptr)(unsafe.Pointer(ptail))-cquery)
	if p := *(*uintptr)(unsafe.Pointer(pstmt)); p != 0 {
		stmt = &Stmt{conn: c, ptr: p}
	}
	return
}

// Exec runs every statement of script in order and discards their rows.
func (c *Conn) Exec(script string) (err error) {
	for rest := script; rest != ""; {
		var (
			stmt     *Stmt
			trailing int
		)
		if stmt, trailing, err = c.PrepareTransient(rest); err != nil {
			return
		}
		consumed := len(rest) - trailing
		rest = rest[consumed:]
		if stmt != nil {
			err = stmt.exhaust()
			if ferr := stmt.Finalize(); err == nil {
				err = ferr
			}
			if err != nil {
				return
			}
		}
		if consumed == 0 {
			return
		}
	}
	return
}

func (c *Conn) lastError(rc int32) error {
	if c.db == 0 {
		return &Error{Code: int(rc), Msg: libc.GoString(sqlite3.Xsqlite3_errstr(c.tls, rc))}
	}
	return &Error{Code: int(rc), Msg: libc.GoString(sqlite3.Xsqlite3_errmsg(c.tls, c.db))}
}

func malloc(tls *libc.TLS, n types.Size_t) (uintptr, error) {
	p := libc.Xmalloc(tls, n)
	if p == 0 {
		return 0, errors.Errorf("allocate %d bytes failed", n)
	}
	return p, nil
}

func goText(p uintptr, n int32) string {
	if p == 0 || n <= 0 {
		return ""
	}
	return string(libc.GoBytes(p, int(n)))
}

func goBlob(p uintptr, n int32) []byte {
	if p == 0 || n <= 0 {
		return []byte{}
	}
	b := make([]byte, n)
	copy(b, libc.GoBytes(p, int(n)))
	return b
}
