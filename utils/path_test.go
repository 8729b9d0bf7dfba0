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
	"os/user"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHomeDirExpand(t *testing.T) {
	Convey("expand ~ dir", t, func() {
		usr, err := user.Current()
		So(err, ShouldBeNil)

		So(HomeDirExpand("~"), ShouldEqual, usr.HomeDir)
		So(HomeDirExpand("~/.cql-sha3"), ShouldEqual, filepath.Join(usr.HomeDir, ".cql-sha3"))
		So(HomeDirExpand("/dev/null"), ShouldEqual, "/dev/null")
		So(HomeDirExpand("~user/x"), ShouldEqual, "~user/x")
		So(HomeDirExpand(""), ShouldEqual, "")
	})
}

func TestExist(t *testing.T) {
	Convey("path exist or not", t, func() {
		So(Exist("/tmp/anemptypathshouldnotexist"), ShouldEqual, false)
		So(Exist("/"), ShouldEqual, true)
		So(Exist("/dev/null"), ShouldEqual, true)
	})
}

func TestOpenInput(t *testing.T) {
	Convey("open input", t, func() {
		f, err := ioutil.TempFile("", "input")
		So(err, ShouldBeNil)
		defer os.Remove(f.Name())
		_, err = f.WriteString("abc")
		So(err, ShouldBeNil)
		So(f.Close(), ShouldBeNil)

		rc, err := OpenInput(f.Name())
		So(err, ShouldBeNil)
		data, err := ioutil.ReadAll(rc)
		So(err, ShouldBeNil)
		So(string(data), ShouldEqual, "abc")
		So(rc.Close(), ShouldBeNil)

		rc, err = OpenInput(StdinName)
		So(err, ShouldBeNil)
		So(rc.Close(), ShouldBeNil)

		_, err = OpenInput("/path/not/exist")
		So(err, ShouldNotBeNil)
	})
}
