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

	"github.com/CovenantSQL/shathree/crypto/hash"
	"github.com/CovenantSQL/shathree/crypto/sha3"
	"github.com/CovenantSQL/shathree/metric"
	"github.com/CovenantSQL/shathree/queryhash"
	"github.com/CovenantSQL/shathree/utils/log"
)

// Register installs the sha3 and sha3_query SQL functions on conn. Functions
// are per connection, so Register must run on every new connection.
func Register(conn *Conn) (err error) {
	for _, f := range []struct {
		name  string
		nargs int
		flags FunctionFlags
		fn    ScalarFunc
	}{
		{metric.FuncSHA3, 1, FuncDeterministic | FuncInnocuous, sha3Func},
		{metric.FuncSHA3, 2, FuncDeterministic | FuncInnocuous, sha3Func},
		{metric.FuncSHA3Query, 1, FuncDirectOnly, sha3QueryFunc(conn)},
		{metric.FuncSHA3Query, 2, FuncDirectOnly, sha3QueryFunc(conn)},
	} {
		if err = conn.CreateFunction(f.name, f.nargs, f.flags, f.fn); err != nil {
			err = errors.Wrapf(err, "register function %s/%d failed", f.name, f.nargs)
			return
		}
	}
	return
}

// sizeArg returns the digest size selected by the optional second argument.
// Unlike sha3.New, zero is not accepted as the default.
func sizeArg(args []Value) (bits int, err error) {
	bits = sha3.DefaultSize
	if len(args) > 1 {
		bits = args[1].Int()
	}
	err = sha3.ValidSize(bits)
	return
}

func sha3Func(args []Value) (result []byte, err error) {
	defer func() {
		if err != nil {
			metric.Default.ObserveError(metric.FuncSHA3)
		}
	}()

	bits, err := sizeArg(args)
	if err != nil {
		return
	}

	var data []byte
	switch args[0].Type() {
	case TypeNull:
		metric.Default.ObserveHash(0)
		return
	case TypeBlob:
		data = args[0].Blob()
	default:
		data = []byte(args[0].Text())
	}

	digest, err := hash.SHA3D(bits, data)
	if err != nil {
		return
	}
	metric.Default.ObserveHash(len(data))
	result = digest
	return
}

func sha3QueryFunc(conn *Conn) ScalarFunc {
	return func(args []Value) (result []byte, err error) {
		defer func() {
			if err != nil {
				metric.Default.ObserveError(metric.FuncSHA3Query)
				log.WithError(err).Debug("sha3_query failed")
			}
		}()

		bits, err := sizeArg(args)
		if err != nil {
			return
		}
		if args[0].Type() == TypeNull {
			metric.Default.ObserveQuery(0, 0, 0)
			return
		}

		h, err := queryhash.New(NewEngine(conn), bits)
		if err != nil {
			return
		}
		digest, stats, err := h.Hash(args[0].Text())
		if err != nil {
			return
		}
		metric.Default.ObserveQuery(stats.Statements, stats.Rows, stats.Bytes)
		result = digest
		return
	}
}
