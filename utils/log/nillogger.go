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

package log

// NilWriter swallows whatever is written to it.
type NilWriter struct{}

// Write reports zero bytes written and no error.
func (w *NilWriter) Write(p []byte) (n int, err error) {
	return 0, nil
}

// Discard silences the standard logger, used by tests and quiet CLI runs.
func Discard() {
	SetOutput(&NilWriter{})
}
