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
	"fmt"
)

// QueryCompileError indicates a statement failed to compile. SQL holds the
// remaining text starting at the failed statement.
type QueryCompileError struct {
	SQL string
	Err error
}

func (e *QueryCompileError) Error() string {
	return fmt.Sprintf("error SQL statement [%s]: %s", e.SQL, e.Err.Error())
}

// Cause returns the engine error, for github.com/pkg/errors.Cause.
func (e *QueryCompileError) Cause() error {
	return e.Err
}

// NonQueryError indicates a statement would modify the database.
type NonQueryError struct {
	SQL string
}

func (e *NonQueryError) Error() string {
	return fmt.Sprintf("non-query: [%s]", e.SQL)
}
