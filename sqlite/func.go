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
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"modernc.org/libc"
	"modernc.org/libc/sys/types"
	sqlite3 "modernc.org/sqlite/lib"
)

// FunctionFlags qualify a registered SQL function.
type FunctionFlags int32

// Function flags.
const (
	FuncDeterministic FunctionFlags = sqlite3.SQLITE_DETERMINISTIC
	FuncInnocuous     FunctionFlags = sqlite3.SQLITE_INNOCUOUS
	FuncDirectOnly    FunctionFlags = sqlite3.SQLITE_DIRECTONLY
)

// Value is an argument of an SQL function call, valid while the call runs.
type Value struct {
	tls *libc.TLS
	ptr uintptr
}

// Type returns the storage class of the value.
func (v Value) Type() ColumnType {
	return ColumnType(sqlite3.Xsqlite3_value_type(v.tls, v.ptr))
}

// Int returns the value as a 32-bit integer.
func (v Value) Int() int {
	return int(sqlite3.Xsqlite3_value_int(v.tls, v.ptr))
}

// Text returns the value as text.
func (v Value) Text() string {
	p := sqlite3.Xsqlite3_value_text(v.tls, v.ptr)
	return goText(p, sqlite3.Xsqlite3_value_bytes(v.tls, v.ptr))
}

// Blob returns a copy of the value bytes.
func (v Value) Blob() []byte {
	p := sqlite3.Xsqlite3_value_blob(v.tls, v.ptr)
	return goBlob(p, sqlite3.Xsqlite3_value_bytes(v.tls, v.ptr))
}

// ScalarFunc implements an SQL scalar function returning a BLOB. A nil
// result is NULL. A non-nil error fails the calling statement with the error
// text as its message.
type ScalarFunc func(args []Value) ([]byte, error)

var scalarFuncs = struct {
	sync.RWMutex
	next uintptr
	m    map[uintptr]ScalarFunc
}{m: make(map[uintptr]ScalarFunc)}

// CreateFunction registers fn as the SQL function name taking nArgs
// arguments on the connection.
func (c *Conn) CreateFunction(name string, nArgs int, flags FunctionFlags, fn ScalarFunc) (err error) {
	cname, err := libc.CString(name)
	if err != nil {
		return errors.Wrapf(err, "allocate function name %s failed", name)
	}
	defer libc.Xfree(c.tls, cname)

	scalarFuncs.Lock()
	scalarFuncs.next++
	id := scalarFuncs.next
	scalarFuncs.m[id] = fn
	scalarFuncs.Unlock()

	// xDestroy drops id again, also when registration fails.
	rc := sqlite3.Xsqlite3_create_function_v2(
		c.tls,
		c.db,
		cname,
		int32(nArgs),
		sqlite3.SQLITE_UTF8|int32(flags),
		id,
		cFuncPointer(funcTrampoline),
		0,
		0,
		cFuncPointer(destroyFunc),
	)
	if rc != sqlite3.SQLITE_OK {
		return errors.Wrapf(c.lastError(rc), "create function %s failed", name)
	}
	return
}

func funcTrampoline(tls *libc.TLS, ctx uintptr, argc int32, argv uintptr) {
	id := sqlite3.Xsqlite3_user_data(tls, ctx)
	scalarFuncs.RLock()
	fn := scalarFuncs.m[id]
	scalarFuncs.RUnlock()

	args := make([]Value, argc)
	for i := range args {
		args[i] = Value{
			tls: tls,
			ptr: *(*uintptr)(unsafe.Pointer(argv + uintptr(i)*uintptr(ptrSize))),
		}
	}

	res, err := fn(args)
	switch {
	case err != nil:
		resultError(tls, ctx, err)
	case res == nil:
		sqlite3.Xsqlite3_result_null(tls, ctx)
	case len(res) == 0:
		sqlite3.Xsqlite3_result_zeroblob(tls, ctx, 0)
	default:
		p := libc.Xmalloc(tls, types.Size_t(len(res)))
		if p == 0 {
			sqlite3.Xsqlite3_result_error_nomem(tls, ctx)
			return
		}
		defer libc.Xfree(tls, p)
		copy(libc.GoBytes(p, len(res)), res)
		sqlite3.Xsqlite3_result_blob(tls, ctx, p, int32(len(res)), sqlite3.SQLITE_TRANSIENT)
	}
}

func resultError(tls *libc.TLS, ctx uintptr, err error) {
	msg := err.Error()
	cmsg, cerr := libc.CString(msg)
	if cerr != nil {
		sqlite3.Xsqlite3_result_error_nomem(tls, ctx)
		return
	}
	defer libc.Xfree(tls, cmsg)
	sqlite3.Xsqlite3_result_error(tls, ctx, cmsg, int32(len(msg)))
}

func destroyFunc(tls *libc.TLS, id uintptr) {
	scalarFuncs.Lock()
	delete(scalarFuncs.m, id)
	scalarFuncs.Unlock()
}

// cFuncPointer turns a Go function into a pointer the transpiled C code can
// call back.
func cFuncPointer[T any](f T) uintptr {
	return *(*uintptr)(unsafe.Pointer(&struct{ f T }{f}))
}
