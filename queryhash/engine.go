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

// Engine compiles SQL text one statement at a time.
type Engine interface {
	// Prepare compiles the leading statement of query and returns it together
	// with the unparsed remainder. A nil Statement with a nil error means the
	// leading statement is empty (only whitespace, comments or a bare ";"), in
	// which case tail still advances past it.
	Prepare(query string) (stmt Statement, tail string, err error)
}

// Statement is a compiled statement whose rows can be stepped through.
type Statement interface {
	// SQL returns the statement text exactly as it was compiled.
	SQL() string
	// ReadOnly reports whether executing the statement leaves the database untouched.
	ReadOnly() (bool, error)
	// Step advances to the next result row and reports whether there is one.
	Step() (bool, error)
	// ColumnCount returns the number of columns of the result set.
	ColumnCount() int
	// Column returns column i of the current row.
	Column(i int) Value
	// Finalize releases the statement.
	Finalize() error
}
