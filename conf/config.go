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

package conf

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/CovenantSQL/shathree/crypto/sha3"
	"github.com/CovenantSQL/shathree/storage"
	"github.com/CovenantSQL/shathree/utils"
	"github.com/CovenantSQL/shathree/utils/log"
)

// Config holds all the config read from yaml config file.
type Config struct {
	// DSN is the sqlite connection string queries run against.
	DSN string `yaml:"DSN"`
	// HashSize is the digest size in bits, one of 224, 256, 384 or 512.
	HashSize int `yaml:"HashSize"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"LogLevel"`
	// ReadOnly adds _query_only=on to DSN when set.
	ReadOnly bool `yaml:"ReadOnly"`
}

// GConf is the global config pointer.
var GConf *Config

// NewConfig returns a Config filled with defaults.
func NewConfig() *Config {
	return &Config{
		DSN:      DefaultDSN,
		HashSize: DefaultHashSize,
		LogLevel: DefaultLogLevel,
	}
}

// LoadConfig loads config from configPath, `~` expanded.
func LoadConfig(configPath string) (config *Config, err error) {
	configPath = utils.HomeDirExpand(configPath)
	configBytes, err := ioutil.ReadFile(configPath)
	if err != nil {
		log.WithError(err).Error("read config file failed")
		err = errors.Wrap(err, "read config file failed")
		return
	}
	config = NewConfig()
	if err = yaml.Unmarshal(configBytes, config); err != nil {
		log.WithError(err).Error("unmarshal config file failed")
		err = errors.Wrap(err, "unmarshal config file failed")
		config = nil
		return
	}
	if err = config.Validate(); err != nil {
		config = nil
		return
	}
	return
}

// Validate fills empty fields with defaults and checks the rest.
func (c *Config) Validate() (err error) {
	if c.DSN == "" {
		c.DSN = DefaultDSN
	}
	if c.HashSize == 0 {
		c.HashSize = DefaultHashSize
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if err = sha3.ValidSize(c.HashSize); err != nil {
		return
	}
	if _, err = log.ParseLevel(c.LogLevel); err != nil {
		err = errors.Wrapf(err, "invalid log level %s", c.LogLevel)
		return
	}

	var dsn *storage.DSN
	if dsn, err = storage.NewDSN(c.DSN); err != nil {
		return
	}
	if !dsn.IsMemory() {
		dsn.SetFileName(utils.HomeDirExpand(dsn.GetFileName()))
	}
	if c.ReadOnly {
		dsn.AddParam("_query_only", "on")
	}
	c.DSN = dsn.Format()
	return
}
