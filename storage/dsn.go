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

// Package storage handles sqlite connection strings.
//
// A DSN has the form file:<name>?<params>. Parameters prefixed with "_" are
// connection pragmas (for example _query_only=on or _busy_timeout=5000) and
// are applied with PRAGMA statements after the connection is opened, every
// other parameter is a sqlite URI parameter and is passed to the engine.
package storage

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const (
	filePrefix   = "file:"
	pragmaPrefix = "_"
	memoryName   = ":memory:"
)

// DSN represents a sqlite connection string.
type DSN struct {
	filename string
	params   map[string]string
}

// Pragma is a connection pragma extracted from a DSN.
type Pragma struct {
	Name  string
	Value string
}

// Statement returns the PRAGMA statement setting p.
func (p Pragma) Statement() string {
	return "PRAGMA " + p.Name + " = " + p.Value
}

// NewDSN parses the given string and returns a DSN.
func NewDSN(s string) (*DSN, error) {
	parts := strings.SplitN(s, "?", 2)

	dsn := &DSN{
		filename: strings.TrimPrefix(parts[0], filePrefix),
		params:   make(map[string]string),
	}

	if len(parts) < 2 || parts[1] == "" {
		return dsn, nil
	}

	for _, v := range strings.Split(parts[1], "&") {
		param := strings.SplitN(v, "=", 2)

		if len(param) != 2 || param[0] == "" {
			return nil, errors.Errorf("unrecognized parameter: %s", v)
		}
		if strings.HasPrefix(param[0], pragmaPrefix) && !validPragma(param[0][1:], param[1]) {
			return nil, errors.Errorf("invalid pragma parameter: %s", v)
		}

		dsn.params[param[0]] = param[1]
	}

	return dsn, nil
}

// validPragma limits pragma names to identifiers and values to simple words,
// since both end up verbatim in a PRAGMA statement.
func validPragma(name, value string) bool {
	if name == "" || value == "" {
		return false
	}
	for _, c := range name {
		if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			return false
		}
	}
	for _, c := range value {
		if !(c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}

func (dsn *DSN) keys() []string {
	keys := make([]string, 0, len(dsn.params))
	for k := range dsn.params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (dsn *DSN) format(filter func(key string) bool) string {
	var b strings.Builder
	b.WriteString(filePrefix)
	b.WriteString(dsn.filename)

	sep := byte('?')
	for _, k := range dsn.keys() {
		if filter != nil && !filter(k) {
			continue
		}
		b.WriteByte(sep)
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(dsn.params[k])
		sep = '&'
	}
	return b.String()
}

// Format formats DSN to a connection string, parameters sorted by name.
func (dsn *DSN) Format() string {
	return dsn.format(nil)
}

// URI returns the sqlite URI filename, pragma parameters left out.
func (dsn *DSN) URI() string {
	return dsn.format(func(key string) bool {
		return !strings.HasPrefix(key, pragmaPrefix)
	})
}

// Pragmas returns the pragma parameters sorted by name.
func (dsn *DSN) Pragmas() (pragmas []Pragma) {
	for _, k := range dsn.keys() {
		if strings.HasPrefix(k, pragmaPrefix) {
			pragmas = append(pragmas, Pragma{
				Name:  k[len(pragmaPrefix):],
				Value: dsn.params[k],
			})
		}
	}
	return
}

// SetFileName sets the sqlite database file name of DSN.
func (dsn *DSN) SetFileName(fn string) { dsn.filename = strings.TrimPrefix(fn, filePrefix) }

// GetFileName gets the sqlite database file name of DSN.
func (dsn *DSN) GetFileName() string { return dsn.filename }

// IsMemory reports whether the DSN names an in-memory database.
func (dsn *DSN) IsMemory() bool {
	if dsn.filename == "" || dsn.filename == memoryName {
		return true
	}
	mode, _ := dsn.GetParam("mode")
	return mode == "memory"
}

// IsReadOnly reports whether the DSN opens the database read-only or query-only.
func (dsn *DSN) IsReadOnly() bool {
	if mode, _ := dsn.GetParam("mode"); mode == "ro" {
		return true
	}
	switch q, _ := dsn.GetParam("_query_only"); strings.ToLower(q) {
	case "1", "on", "true", "yes":
		return true
	}
	return false
}

// AddParam adds key:value pair DSN parameters, an empty value removes the key.
func (dsn *DSN) AddParam(key, value string) {
	if dsn.params == nil {
		dsn.params = make(map[string]string)
	}

	if value == "" {
		delete(dsn.params, key)
	} else {
		dsn.params[key] = value
	}
}

// GetParam gets the value.
func (dsn *DSN) GetParam(key string) (value string, ok bool) {
	value, ok = dsn.params[key]
	return
}

// Clone returns a copy of current dsn.
func (dsn *DSN) Clone() (copy *DSN) {
	copy = &DSN{}
	copy.filename = dsn.filename
	copy.params = make(map[string]string, len(dsn.params))

	for k, v := range dsn.params {
		copy.params[k] = v
	}

	return
}
