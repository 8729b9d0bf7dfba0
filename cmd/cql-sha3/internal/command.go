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
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/template"
)

const name = "cql-sha3"

// Command is an implementation of a cql-sha3 command like cql-sha3 hash.
type Command struct {
	// Run runs the command.
	// The args are the arguments after the command name.
	Run func(cmd *Command, args []string)

	// UsageLine is the one-line usage message.
	// The words between "cql-sha3" and the first flag or argument in the line are taken to be the command name.
	UsageLine string

	// Short is the short description shown in the 'cql-sha3 help' output.
	Short string

	// Long is the long message shown in the 'cql-sha3 help <this-command>' output.
	Long string

	// Flag is a set of flags specific to this command.
	Flag flag.FlagSet
}

// LongName returns the command's long name: all the words in the usage line between "cql-sha3" and a flag or argument.
func (c *Command) LongName() string {
	n := c.UsageLine
	if i := strings.Index(n, " ["); i >= 0 {
		n = n[:i]
	}
	if n == name {
		return ""
	}
	return strings.TrimPrefix(n, name+" ")
}

// Name returns the command's short name: the last word in the usage line before a flag or argument.
func (c *Command) Name() string {
	n := c.LongName()
	if i := strings.LastIndex(n, " "); i >= 0 {
		n = n[i+1:]
	}
	return n
}

// Usage prints the command usage and exits with status 2.
func (c *Command) Usage() {
	c.printUsage(os.Stderr)
	SetExitStatus(2)
	Exit()
}

func (c *Command) printUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s\n", c.UsageLine)
	if c.Long != "" {
		fmt.Fprintf(w, "%s\n", strings.TrimSpace(c.Long))
	}
	c.Flag.SetOutput(w)
	c.Flag.PrintDefaults()
}

// Runnable reports whether the command can be run; otherwise
// it is a documentation pseudo-command.
func (c *Command) Runnable() bool {
	return c.Run != nil
}

// Commands lists the available commands and help topics.
// The order here is the order in which they are printed by 'cql-sha3 help'.
var Commands []*Command

// Lookup returns the runnable command named n.
func Lookup(n string) *Command {
	for _, cmd := range Commands {
		if cmd.Name() == n && cmd.Runnable() {
			return cmd
		}
	}
	return nil
}

var (
	exitStatus = 0
	exitMu     sync.Mutex
	atExitFns  []func()
	// exitFunc is replaced in tests.
	exitFunc = os.Exit
)

// SetExitStatus raises the process exit status to n.
func SetExitStatus(n int) {
	exitMu.Lock()
	if exitStatus < n {
		exitStatus = n
	}
	exitMu.Unlock()
}

// GetExitStatus returns the current exit status.
func GetExitStatus() int {
	exitMu.Lock()
	defer exitMu.Unlock()
	return exitStatus
}

// AtExit registers f to run before the process exits.
func AtExit(f func()) {
	exitMu.Lock()
	atExitFns = append(atExitFns, f)
	exitMu.Unlock()
}

// Exit runs the AtExit functions and exits with the current status.
func Exit() {
	exitMu.Lock()
	fns := atExitFns
	atExitFns = nil
	exitMu.Unlock()
	for _, f := range fns {
		f()
	}
	exitFunc(GetExitStatus())
}

var usageTemplate = `cql-sha3 computes SHA3 digests of data and of SQL query results.

Usage:

	{{.Name}} [global flags] <command> [arguments]

The commands are:
{{range .Commands}}{{if .Runnable}}
	{{.Name | printf "%-11s"}} {{.Short}}{{end}}{{end}}

Use "{{.Name}} help <command>" for more information about a command.

Global flags:
`

// PrintMainUsage writes the main usage text to w.
func PrintMainUsage(w io.Writer) {
	tmpl := template.Must(template.New("usage").Parse(usageTemplate))
	_ = tmpl.Execute(w, struct {
		Name     string
		Commands []*Command
	}{name, Commands})
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
}

// MainUsage prints the main usage and exits with status 2.
func MainUsage() {
	PrintMainUsage(os.Stderr)
	SetExitStatus(2)
	Exit()
}
