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
	"io"
	"io/ioutil"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// StdinName selects standard input in OpenInput.
const StdinName = "-"

// HomeDirExpand tries to expand the tilde (~) in the front of a path
// to a fullpath directory.
func HomeDirExpand(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	usr, err := user.Current()
	if err != nil {
		return path
	}
	if path == "~" {
		return usr.HomeDir
	}
	return filepath.Join(usr.HomeDir, strings.TrimPrefix(path, "~/"))
}

// Exist return if file or path is exist.
func Exist(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// OpenInput opens the named file, `~` expanded, or standard input for StdinName.
// Closing the result never closes standard input.
func OpenInput(name string) (rc io.ReadCloser, err error) {
	if name == StdinName {
		return ioutil.NopCloser(os.Stdin), nil
	}
	var f *os.File
	if f, err = os.Open(filepath.Clean(HomeDirExpand(name))); err != nil {
		err = errors.Wrapf(err, "open input %s failed", name)
		return
	}
	return f, nil
}
