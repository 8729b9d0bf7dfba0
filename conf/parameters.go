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

package conf

// Defaults applied to fields a config file leaves empty.
const (
	// DefaultConfigFile is read by the cli when no -config is given and it exists.
	DefaultConfigFile = "~/.cql-sha3/config.yaml"
	// DefaultDSN opens a private in-memory database.
	DefaultDSN = "file::memory:"
	// DefaultHashSize is the digest size in bits.
	DefaultHashSize = 256
	// DefaultLogLevel is the logrus level name.
	DefaultLogLevel = "info"
)
