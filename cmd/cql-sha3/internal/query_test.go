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
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v2"

	"github.com/CovenantSQL/shathree/conf"
	"github.com/CovenantSQL/shathree/crypto/sha3"
	"github.com/CovenantSQL/shathree/sqlite"
	"github.com/CovenantSQL/shathree/utils/log"
	"github.com/CovenantSQL/shathree/utils/timer"
)

func TestQuery(t *testing.T) {
	Convey("hash query results", t, func() {
		commonVarsReset()
		dir, err := ioutil.TempDir("", "cql-sha3")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)

		dbFile := filepath.Join(dir, "test.db")
		conn, err := sqlite.Open("file:" + dbFile)
		So(err, ShouldBeNil)
		stmt, _, err := conn.PrepareTransient("CREATE TABLE t (a INTEGER, b TEXT)")
		So(err, ShouldBeNil)
		_, err = stmt.Step()
		So(err, ShouldBeNil)
		So(stmt.Finalize(), ShouldBeNil)
		So(conn.Close(), ShouldBeNil)
		queryDSN = "file:" + dbFile

		Convey("digest of the pinned statements", func() {
			runQuery(CmdQuery, []string{"SELECT 1;", "SELECT 'x';"})
			So(GetExitStatus(), ShouldEqual, 0)

			stream := append([]byte("S9:SELECT 1;R"), 'I', 0, 0, 0, 0, 0, 0, 0, 1)
			stream = append(stream, []byte("S12: SELECT 'x';RT1:x")...)
			want := sha3.Sum256(stream)
			So(strings.TrimSpace(out.String()), ShouldEqual, hex.EncodeToString(want[:]))
		})
		Convey("dump writes the canonical stream", func() {
			dumpOnly = true
			runQuery(CmdQuery, []string{"SELECT 1"})
			So(GetExitStatus(), ShouldEqual, 0)
			So(out.Bytes(), ShouldResemble, append([]byte("S8:SELECT 1R"), 'I', 0, 0, 0, 0, 0, 0, 0, 1))
		})
		Convey("json output", func() {
			asJSON = true
			hashSize = 224
			runQuery(CmdQuery, []string{"SELECT * FROM t"})
			So(GetExitStatus(), ShouldEqual, 0)
			var res queryDigest
			So(json.Unmarshal(out.Bytes(), &res), ShouldBeNil)
			So(res.Bits, ShouldEqual, 224)
			So(res.Statements, ShouldEqual, 1)
			So(res.Rows, ShouldEqual, 0)
			want := sha3.Sum224([]byte("S15:SELECT * FROM t"))
			So([]byte(res.Digest), ShouldResemble, want[:])
		})
		Convey("config file supplies dsn and size", func() {
			queryDSN = ""
			cfgPath := filepath.Join(dir, "config.yaml")
			b, err := yaml.Marshal(&conf.Config{DSN: "file:" + dbFile, HashSize: 384, ReadOnly: true})
			So(err, ShouldBeNil)
			So(ioutil.WriteFile(cfgPath, b, 0600), ShouldBeNil)
			configFile = cfgPath

			runQuery(CmdQuery, []string{"SELECT count(*) FROM t"})
			So(GetExitStatus(), ShouldEqual, 0)
			So(strings.TrimSpace(out.String()), ShouldHaveLength, 96)
			So(conf.GConf.HashSize, ShouldEqual, 384)
			So(log.GetLevel(), ShouldEqual, log.InfoLevel)
		})
		Convey("debug logs carry stage timings", func() {
			var logs bytes.Buffer
			ConsoleLog.SetOutput(&logs)
			ConsoleLog.SetLevel(logrus.DebugLevel)
			runQuery(CmdQuery, []string{"SELECT 1"})
			So(GetExitStatus(), ShouldEqual, 0)
			So(logs.String(), ShouldContainSubstring, "query results hashed")
			So(logs.String(), ShouldContainSubstring, "open=")
			So(logs.String(), ShouldContainSubstring, "hash=")
			So(logs.String(), ShouldContainSubstring, timer.TotalKey+"=")
		})
		Convey("writers are refused", func() {
			runQuery(CmdQuery, []string{"DELETE FROM t"})
			So(GetExitStatus(), ShouldEqual, 1)
			So(out.String(), ShouldBeEmpty)
		})
		Convey("bad inputs", func() {
			configFile = filepath.Join(dir, "missing.yaml")
			runQuery(CmdQuery, []string{"SELECT 1"})
			So(GetExitStatus(), ShouldEqual, 1)

			commonVarsReset()
			queryDSN = "file:x.db?broken"
			runQuery(CmdQuery, []string{"SELECT 1"})
			So(GetExitStatus(), ShouldEqual, 2)

			commonVarsReset()
			queryDSN = "file:" + dbFile
			hashSize = 100
			runQuery(CmdQuery, []string{"SELECT 1"})
			So(GetExitStatus(), ShouldEqual, 2)
		})
	})
}
