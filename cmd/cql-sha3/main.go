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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/CovenantSQL/shathree/cmd/cql-sha3/internal"
)

var (
	version = "unknown"
)

func init() {
	internal.Commands = []*internal.Command{
		internal.CmdHash,
		internal.CmdQuery,
		internal.CmdVersion,
		internal.CmdHelp,
	}
}

func main() {
	internal.Version = version

	internal.AddGlobalFlags(flag.CommandLine)
	flag.Usage = internal.MainUsage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		internal.MainUsage()
	}

	internal.GlobalInit()
	internal.PrintVersion(true)

	if cmd := internal.Lookup(args[0]); cmd != nil {
		cmd.Flag.Usage = func() { cmd.Usage() }
		_ = cmd.Flag.Parse(args[1:])
		cmd.Run(cmd, cmd.Flag.Args())
		internal.Exit()
		return
	}
	fmt.Fprintf(os.Stderr, "cql-sha3 %s: unknown command\nRun 'cql-sha3 help' for usage.\n", args[0])
	internal.SetExitStatus(2)
	internal.Exit()
}
