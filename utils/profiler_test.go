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

package utils

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/CovenantSQL/shathree/crypto/sha3"
	"github.com/CovenantSQL/shathree/utils/log"
)

func TestProfile(t *testing.T) {
	log.Discard()

	Convey("profile a hashing run", t, func() {
		dir, err := ioutil.TempDir("", "profile")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)
		cpu, mem := filepath.Join(dir, "cpu.out"), filepath.Join(dir, "mem.out")

		So(StartProfile(cpu, mem), ShouldBeNil)
		data := make([]byte, 1<<16)
		for i := 0; i < 16; i++ {
			_ = sha3.Sum256(data)
		}
		StopProfile()

		So(Exist(cpu), ShouldBeTrue)
		So(Exist(mem), ShouldBeTrue)
		So(prof.cpu, ShouldBeNil)
		So(prof.mem, ShouldBeNil)
	})
	Convey("unwritable profile path", t, func() {
		So(StartProfile("/path/not/exist/cpu.out", ""), ShouldNotBeNil)
		So(StartProfile("", "/path/not/exist/mem.out"), ShouldNotBeNil)
		So(prof.cpu, ShouldBeNil)
	})
}
