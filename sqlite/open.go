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
	"github.com/pkg/errors"

	"github.com/CovenantSQL/shathree/storage"
	"github.com/CovenantSQL/shathree/utils/log"
)

const memoryFile = ":memory:"

// Open opens a connection described by dsn, applies its pragma parameters
// and registers the hash functions on it.
func Open(dsn string) (conn *Conn, err error) {
	var d *storage.DSN
	if d, err = storage.NewDSN(dsn); err != nil {
		return
	}
	if d.GetFileName() == "" {
		d.SetFileName(memoryFile)
	}

	flags := OpenURI | OpenReadWrite | OpenCreate
	if d.IsMemory() {
		flags |= OpenMemory
	}
	if conn, err = OpenConn(d.URI(), flags); err != nil {
		err = errors.Wrapf(err, "open database %s failed", d.GetFileName())
		return
	}
	defer func() {
		if err != nil {
			_ = conn.Close()
			conn = nil
		}
	}()

	for _, p := range d.Pragmas() {
		if err = conn.Exec(p.Statement()); err != nil {
			err = errors.Wrapf(err, "apply pragma %s failed", p.Name)
			return
		}
	}
	if err = Register(conn); err != nil {
		return
	}

	log.WithFields(log.Fields{
		"file":     d.GetFileName(),
		"memory":   d.IsMemory(),
		"readonly": d.IsReadOnly(),
	}).Debug("database opened")
	return
}
