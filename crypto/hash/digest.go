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

package hash

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/CovenantSQL/shathree/utils/log"
)

// MaxDigestSize is the length of the longest supported digest, SHA3-512.
const MaxDigestSize = 64

// MaxDigestStringSize is the maximum length of a Digest hex string.
const MaxDigestStringSize = MaxDigestSize * 2

// ErrDigestStrSize describes an error that indicates the caller specified a
// digest string that has too many characters.
var ErrDigestStrSize = fmt.Errorf("max digest string length is %v bytes", MaxDigestStringSize)

// Digest holds the output of a hash function.
type Digest []byte

// String returns the Digest as a hexadecimal string.
func (d Digest) String() string {
	return hex.EncodeToString(d)
}

// Short returns the hexadecimal string of the first `n` byte(s).
func (d Digest) Short(n int) string {
	var l = len(d)
	if n < l {
		l = n
	}
	return hex.EncodeToString(d[:l])
}

// Bits returns the digest length in bits.
func (d Digest) Bits() int {
	return len(d) * 8
}

// CloneBytes returns a copy of the digest bytes.
func (d Digest) CloneBytes() []byte {
	b := make([]byte, len(d))
	copy(b, d)
	return b
}

// IsEqual returns true if target is the same as d.
func (d Digest) IsEqual(target Digest) bool {
	return bytes.Equal(d, target)
}

// MarshalJSON implements the json.Marshaler interface.
func (d Digest) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Digest) UnmarshalJSON(data []byte) (err error) {
	var s string
	if err = json.Unmarshal(data, &s); err != nil {
		return
	}
	return Decode(d, s)
}

// MarshalYAML implements the yaml.Marshaler interface.
func (d Digest) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (d *Digest) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}

	if err := Decode(d, str); err != nil {
		log.WithError(err).Error("unmarshal YAML failed")
		return err
	}
	return nil
}

// NewDigestFromStr creates a Digest from a hexadecimal string.
func NewDigestFromStr(s string) (Digest, error) {
	var d Digest
	if err := Decode(&d, s); err != nil {
		return nil, err
	}
	return d, nil
}

// Decode decodes the hexadecimal string encoding of a Digest to a destination.
func Decode(dst *Digest, src string) error {
	if len(src) > MaxDigestStringSize {
		return ErrDigestStrSize
	}
	if len(src)%2 != 0 {
		return fmt.Errorf("odd length digest string %q", src)
	}

	b, err := hex.DecodeString(src)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}
