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
	"io"

	"github.com/pkg/errors"

	"github.com/CovenantSQL/shathree/crypto/sha3"
	"github.com/CovenantSQL/shathree/utils/log"
)

// Encode compiles and runs every statement of query on engine and writes the
// canonical stream to w. It stops at the first statement that fails to
// compile, is not read-only or fails to step.
func Encode(engine Engine, query string, w io.Writer) (stats Stats, err error) {
	enc := NewEncoder(w)
	defer func() {
		stats = enc.Stats()
	}()

	for {
		var (
			stmt Statement
			tail string
		)
		if stmt, tail, err = engine.Prepare(query); err != nil {
			err = &QueryCompileError{SQL: query, Err: err}
			return
		}
		if stmt == nil {
			// empty statement, make sure the input still shrinks
			if tail == "" || len(tail) >= len(query) {
				return
			}
			query = tail
			continue
		}
		if err = encodeStatement(enc, stmt); err != nil {
			return
		}
		if tail == "" {
			return
		}
		query = tail
	}
}

func encodeStatement(enc *Encoder, stmt Statement) (err error) {
	sql := stmt.SQL()
	defer func() {
		if ferr := stmt.Finalize(); ferr != nil && err == nil {
			err = errors.Wrapf(ferr, "finalize statement [%s] failed", sql)
		}
	}()

	var readOnly bool
	if readOnly, err = stmt.ReadOnly(); err != nil {
		err = errors.Wrapf(err, "classify statement [%s] failed", sql)
		return
	}
	if !readOnly {
		err = &NonQueryError{SQL: sql}
		return
	}
	if err = enc.Statement(sql); err != nil {
		err = errors.Wrap(err, "write statement header failed")
		return
	}

	var (
		columns = stmt.ColumnCount()
		rows    int
		hasRow  bool
	)
	for {
		if hasRow, err = stmt.Step(); err != nil {
			err = errors.Wrapf(err, "step statement [%s] failed", sql)
			return
		}
		if !hasRow {
			break
		}
		if err = enc.Row(); err != nil {
			err = errors.Wrap(err, "write row marker failed")
			return
		}
		for i := 0; i < columns; i++ {
			if err = enc.Value(stmt.Column(i)); err != nil {
				err = errors.Wrapf(err, "write column %d failed", i)
				return
			}
		}
		rows++
	}

	log.WithFields(log.Fields{
		"sql":     sql,
		"columns": columns,
		"rows":    rows,
	}).Debug("statement encoded")
	return
}

// ResultSetHasher digests the results of read-only statements run on an Engine.
type ResultSetHasher struct {
	engine Engine
	bits   int
}

// New returns a ResultSetHasher producing bits-wide digests, 0 selects 256.
func New(engine Engine, bits int) (h *ResultSetHasher, err error) {
	if bits == 0 {
		bits = sha3.DefaultSize
	}
	if err = sha3.ValidSize(bits); err != nil {
		return
	}
	h = &ResultSetHasher{
		engine: engine,
		bits:   bits,
	}
	return
}

// Bits returns the digest size in bits.
func (h *ResultSetHasher) Bits() int {
	return h.bits
}

// Hash runs query and returns the digest of its canonical stream along with
// encoding statistics. No digest is returned on error.
func (h *ResultSetHasher) Hash(query string) (digest []byte, stats Stats, err error) {
	var hasher *sha3.Hasher
	if hasher, err = sha3.New(h.bits); err != nil {
		return
	}
	if stats, err = Encode(h.engine, query, hasher); err != nil {
		return
	}
	digest = hasher.Final()

	log.WithFields(log.Fields{
		"bits":       h.bits,
		"statements": stats.Statements,
		"rows":       stats.Rows,
		"bytes":      stats.Bytes,
	}).Debug("query results hashed")
	return
}

// HashQueries is a shorthand for New followed by Hash.
func HashQueries(engine Engine, query string, bits int) (digest []byte, err error) {
	var h *ResultSetHasher
	if h, err = New(engine, bits); err != nil {
		return
	}
	digest, _, err = h.Hash(query)
	return
}
