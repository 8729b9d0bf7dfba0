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

package internal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/CovenantSQL/shathree/crypto/hash"
	"github.com/CovenantSQL/shathree/crypto/sha3"
	"github.com/CovenantSQL/shathree/metric"
	"github.com/CovenantSQL/shathree/utils"
	"github.com/CovenantSQL/shathree/utils/timer"
)

// CmdHash is cql-sha3 hash command entity.
var CmdHash = &Command{
	UsageLine: "cql-sha3 hash [-size bits] [-json] [file ...]",
	Short:     "print SHA3 digests of files",
	Long: `
Hash prints the SHA3 digest of each file, or of standard input when no file
or "-" is given. Output lines look like "<hex digest>  <file>".
e.g.
    cql-sha3 hash -size 512 data.bin
    echo -n abc | cql-sha3 hash
`,
}

func init() {
	CmdHash.Run = runHash

	addSizeFlags(CmdHash)
}

// fileDigest is a single JSON result line of the hash command.
type fileDigest struct {
	File   string      `json:"file"`
	Bits   int         `json:"bits"`
	Bytes  int64       `json:"bytes"`
	Digest hash.Digest `json:"digest"`
}

func runHash(cmd *Command, args []string) {
	bits := hashSize
	if bits == 0 {
		bits = sha3.DefaultSize
	}
	if err := sha3.ValidSize(bits); err != nil {
		ConsoleLog.WithError(err).Error("invalid digest size")
		SetExitStatus(2)
		return
	}
	if len(args) == 0 {
		args = []string{utils.StdinName}
	}

	for _, name := range args {
		t := timer.NewTimer()
		res, err := hashFile(name, bits)
		t.Add("hash")
		if err != nil {
			ConsoleLog.WithField("file", name).WithError(err).Error("hash file failed")
			SetExitStatus(1)
			continue
		}
		ConsoleLog.WithFields(logrus.Fields(t.ToLogFields())).WithField("file", name).Debug("file hashed")
		if err = printDigest(stdout, res); err != nil {
			ConsoleLog.WithError(err).Error("write result failed")
			SetExitStatus(1)
			return
		}
	}
}

func hashFile(name string, bits int) (res *fileDigest, err error) {
	rc, err := utils.OpenInput(name)
	if err != nil {
		return
	}
	defer rc.Close()

	h, err := sha3.New(bits)
	if err != nil {
		return
	}
	n, err := io.Copy(h, rc)
	if err != nil {
		err = errors.Wrap(err, "read input failed")
		return
	}
	metric.Default.ObserveHash(int(n))
	res = &fileDigest{
		File:   name,
		Bits:   bits,
		Bytes:  n,
		Digest: hash.Digest(h.Final()),
	}
	return
}

func printDigest(w io.Writer, res *fileDigest) (err error) {
	if asJSON {
		return json.NewEncoder(w).Encode(res)
	}
	_, err = fmt.Fprintf(w, "%s  %s\n", res.Digest, res.File)
	return
}
