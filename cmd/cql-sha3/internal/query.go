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
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/CovenantSQL/shathree/crypto/hash"
	"github.com/CovenantSQL/shathree/metric"
	"github.com/CovenantSQL/shathree/queryhash"
	"github.com/CovenantSQL/shathree/sqlite"
	"github.com/CovenantSQL/shathree/storage"
	"github.com/CovenantSQL/shathree/utils"
	"github.com/CovenantSQL/shathree/utils/timer"
)

var (
	queryDSN string
	dumpOnly bool
)

// CmdQuery is cql-sha3 query command entity.
var CmdQuery = &Command{
	UsageLine: "cql-sha3 query [-config file] [-dsn dsn] [-size bits] [-dump] [-json] [sql ...]",
	Short:     "print the SHA3 digest of SQL query results",
	Long: `
Query runs read-only SQL statements against a sqlite database and prints the
SHA3 digest of their results, the same value sha3_query() returns. SQL is read
from the arguments, joined by spaces, or from standard input when there is no
argument or it is "-". Statements that would modify the database are refused.
e.g.
    cql-sha3 query -dsn file:chain.db "SELECT * FROM blocks ORDER BY height"

With -dump the canonical byte stream that would be hashed is written instead.
`,
}

func init() {
	CmdQuery.Run = runQuery

	addConfigFlag(CmdQuery)
	addSizeFlags(CmdQuery)
	CmdQuery.Flag.StringVar(&queryDSN, "dsn", "", "sqlite DSN, overrides the config file")
	CmdQuery.Flag.BoolVar(&dumpOnly, "dump", false, "Write the canonical stream instead of the digest")
}

// queryDigest is the JSON result of the query command.
type queryDigest struct {
	Bits       int         `json:"bits"`
	Statements int         `json:"statements"`
	Rows       int         `json:"rows"`
	Bytes      int64       `json:"bytes"`
	Digest     hash.Digest `json:"digest"`
}

func readSQL(args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == utils.StdinName) {
		rc, err := utils.OpenInput(utils.StdinName)
		if err != nil {
			return "", err
		}
		defer rc.Close()
		b, err := ioutil.ReadAll(rc)
		if err != nil {
			return "", errors.Wrap(err, "read sql failed")
		}
		return string(b), nil
	}
	return strings.Join(args, " "), nil
}

func runQuery(cmd *Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		ConsoleLog.WithError(err).Error("load config failed")
		SetExitStatus(1)
		return
	}
	dsn := cfg.DSN
	if queryDSN != "" {
		var d *storage.DSN
		if d, err = storage.NewDSN(queryDSN); err != nil {
			ConsoleLog.WithError(err).Error("invalid dsn")
			SetExitStatus(2)
			return
		}
		dsn = d.Format()
	}
	bits := cfg.HashSize
	if hashSize != 0 {
		bits = hashSize
	}

	query, err := readSQL(args)
	if err != nil {
		ConsoleLog.WithError(err).Error("read sql failed")
		SetExitStatus(1)
		return
	}

	t := timer.NewTimer()
	conn, err := sqlite.Open(dsn)
	if err != nil {
		ConsoleLog.WithError(err).Error("open database failed")
		SetExitStatus(1)
		return
	}
	defer conn.Close()
	t.Add("open")

	engine := sqlite.NewEngine(conn)
	if dumpOnly {
		var stats queryhash.Stats
		stats, err = queryhash.Encode(engine, query, stdout)
		t.Add("dump")
		if err != nil {
			ConsoleLog.WithError(err).Error("encode query results failed")
			SetExitStatus(1)
			return
		}
		ConsoleLog.WithFields(logrus.Fields(t.ToLogFields())).WithField("bytes", stats.Bytes).Debug("query results dumped")
		return
	}

	h, err := queryhash.New(engine, bits)
	if err != nil {
		ConsoleLog.WithError(err).Error("invalid digest size")
		SetExitStatus(2)
		return
	}
	digest, stats, err := h.Hash(query)
	t.Add("hash")
	if err != nil {
		metric.Default.ObserveError(metric.FuncSHA3Query)
		ConsoleLog.WithError(err).Error("hash query results failed")
		SetExitStatus(1)
		return
	}
	metric.Default.ObserveQuery(stats.Statements, stats.Rows, stats.Bytes)
	ConsoleLog.WithFields(logrus.Fields(t.ToLogFields())).Debug("query results hashed")

	res := &queryDigest{
		Bits:       h.Bits(),
		Statements: stats.Statements,
		Rows:       stats.Rows,
		Bytes:      stats.Bytes,
		Digest:     hash.Digest(digest),
	}
	if asJSON {
		err = json.NewEncoder(stdout).Encode(res)
	} else {
		_, err = fmt.Fprintln(stdout, res.Digest)
	}
	if err != nil {
		ConsoleLog.WithError(err).Error("write result failed")
		SetExitStatus(1)
	}
}
