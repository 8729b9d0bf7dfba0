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
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/CovenantSQL/shathree/conf"
	"github.com/CovenantSQL/shathree/metric"
	"github.com/CovenantSQL/shathree/utils"
	"github.com/CovenantSQL/shathree/utils/log"
)

var (
	// ConsoleLog is logging for console.
	ConsoleLog = logrus.New()

	// stdout receives command results, replaced in tests.
	stdout io.Writer = os.Stdout

	// global flags
	logLevel    string
	showMetrics bool
	cpuProfile  string
	memProfile  string

	// common flags
	configFile string
	hashSize   int
	asJSON     bool
)

// AddGlobalFlags registers the flags accepted before the command name.
func AddGlobalFlags(fs *flag.FlagSet) {
	fs.StringVar(&logLevel, "log-level", conf.DefaultLogLevel, "Log level: debug, info, warning, error")
	fs.BoolVar(&showMetrics, "metrics", false, "Print hash metrics to stderr on exit")
	fs.StringVar(&cpuProfile, "cpu-profile", "", "Write CPU profile to file")
	fs.StringVar(&memProfile, "mem-profile", "", "Write memory profile to file")
}

// GlobalInit applies the global flags.
func GlobalInit() {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		ConsoleLog.WithError(err).Error("invalid log level")
		SetExitStatus(2)
		Exit()
		return
	}
	ConsoleLog.SetLevel(level)
	log.SetLevel(level)

	if err = utils.StartProfile(cpuProfile, memProfile); err != nil {
		ConsoleLog.WithError(err).Error("start profile failed")
		SetExitStatus(1)
		Exit()
		return
	}
	AtExit(utils.StopProfile)

	if showMetrics {
		AtExit(printMetrics)
	}
}

func printMetrics() {
	registry, err := metric.NewRegistry(metric.Default)
	if err != nil {
		ConsoleLog.WithError(err).Error("create metric registry failed")
		return
	}
	if err = metric.WriteText(os.Stderr, registry); err != nil {
		ConsoleLog.WithError(err).Error("write metrics failed")
	}
}

func addSizeFlags(cmd *Command) {
	cmd.Flag.IntVar(&hashSize, "size", 0, "Digest size in bits: 224, 256, 384 or 512")
	cmd.Flag.BoolVar(&asJSON, "json", false, "Print results as JSON lines")
}

func addConfigFlag(cmd *Command) {
	cmd.Flag.StringVar(&configFile, "config", "", "Config file, "+conf.DefaultConfigFile+" is used if it exists")
}

// loadConfig returns the config named by -config, the default config file if
// it exists, or the built-in defaults.
func loadConfig() (cfg *conf.Config, err error) {
	path := configFile
	if path == "" {
		if !utils.Exist(utils.HomeDirExpand(conf.DefaultConfigFile)) {
			cfg = conf.NewConfig()
			err = cfg.Validate()
			return
		}
		path = conf.DefaultConfigFile
	}
	if cfg, err = conf.LoadConfig(path); err != nil {
		return
	}
	conf.GConf = cfg
	if logLevel == conf.DefaultLogLevel && cfg.LogLevel != logLevel {
		log.SetStringLevel(cfg.LogLevel, log.InfoLevel)
		ConsoleLog.SetLevel(log.GetLevel())
	}
	return
}
