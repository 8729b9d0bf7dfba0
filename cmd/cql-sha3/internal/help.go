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
	"fmt"
	"os"
	"runtime"
)

var (
	// Version of command, set by main func of version
	Version = "unknown"
)

// CmdVersion is cql-sha3 version command entity.
var CmdVersion = &Command{
	UsageLine: "cql-sha3 version",
	Short:     "show build version information",
}

// CmdHelp is cql-sha3 help command entity.
var CmdHelp = &Command{
	UsageLine: "cql-sha3 help [command]",
	Short:     "show help of a command",
}

func init() {
	CmdVersion.Run = runVersion
	CmdHelp.Run = runHelp
}

// PrintVersion prints program git version.
func PrintVersion(printLog bool) string {
	version := fmt.Sprintf("%v %v %v %v %v\n",
		name, Version, runtime.GOOS, runtime.GOARCH, runtime.Version())

	if printLog {
		ConsoleLog.Debugf("cql-sha3 build: %s", version)
	}

	return version
}

func runVersion(cmd *Command, args []string) {
	fmt.Fprint(stdout, PrintVersion(false))
}

func runHelp(cmd *Command, args []string) {
	if len(args) == 0 {
		PrintMainUsage(stdout)
		return
	}
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "usage: %s\n", cmd.UsageLine)
		SetExitStatus(2)
		return
	}
	c := Lookup(args[0])
	if c == nil {
		fmt.Fprintf(os.Stderr, "Unknown help topic %#q. Run '%s help'.\n", args[0], name)
		SetExitStatus(2)
		return
	}
	c.printUsage(stdout)
}
