// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"encoding/json"
	"maps"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
	"github.com/pingcap/planrule/pkg/sessionctx/variable"
	"github.com/pingcap/planrule/pkg/util/logutil"
	"go.uber.org/atomic"
)

// ErrConfigValidationFailed is returned when a config file holds unknown or invalid items.
var ErrConfigValidationFailed = errors.Normalize("config file %s contained invalid configuration options: %s", errors.RFCCodeText("Planner:Config:ValidationFailed"))

const (
	// DefCatalog is the default catalog of the harness session.
	DefCatalog = "tpch"
	// DefSchema is the default schema of the harness session.
	DefSchema = "tiny"
	// DefUser is the default user of the harness session.
	DefUser = "user"
)

// Config contains configuration options.
type Config struct {
	Log      Log      `toml:"log" json:"log"`
	RuleTest RuleTest `toml:"rule-test" json:"rule-test"`
}

// Log is the log section of config.
type Log struct {
	// Log level.
	Level string `toml:"level" json:"level"`
	// Log format. one of json, text, or console.
	Format string `toml:"format" json:"format"`
	// Disable automatic timestamps in output.
	DisableTimestamp bool `toml:"disable-timestamp" json:"disable-timestamp"`
	// File log config.
	File logutil.FileLogConfig `toml:"file" json:"file"`
}

// RuleTest is the rule-test section of config. It sets up the baseline
// session of the rule application harness and how it prints plans.
type RuleTest struct {
	Catalog string `toml:"catalog" json:"catalog"`
	Schema  string `toml:"schema" json:"schema"`
	User    string `toml:"user" json:"user"`
	// PlanIndent is the indentation level of printed plans.
	PlanIndent int `toml:"plan-indent" json:"plan-indent"`
	// PrintStats annotates printed plans with their stats and costs.
	PrintStats bool `toml:"print-stats" json:"print-stats"`
	// SystemProperties are set on the baseline session.
	SystemProperties map[string]string `toml:"system-properties" json:"system-properties"`
}

var defaultConf = Config{
	Log: Log{
		Level:  logutil.DefaultLogLevel,
		Format: logutil.DefaultLogFormat,
		File:   logutil.NewFileLogConfig(logutil.DefaultLogMaxSize),
	},
	RuleTest: RuleTest{
		Catalog:    DefCatalog,
		Schema:     DefSchema,
		User:       DefUser,
		PlanIndent: 2,
		PrintStats: true,
	},
}

var globalConf atomic.Pointer[Config]

func init() {
	globalConf.Store(NewConfig())
}

// NewConfig creates a new config instance with default value.
func NewConfig() *Config {
	conf := defaultConf
	conf.RuleTest.SystemProperties = make(map[string]string)
	return &conf
}

// GetGlobalConfig returns the global configuration for this server.
// It should store configuration from command line and configuration file.
// Other parts of the system can read the global configuration use this function.
func GetGlobalConfig() *Config {
	return globalConf.Load()
}

// StoreGlobalConfig stores a new config to the globalConf. It mostly uses in the test to avoid some data races.
func StoreGlobalConfig(config *Config) {
	globalConf.Store(config)
}

// UpdateGlobal updates the global config, and provide a latest config to the function f.
// For example:
// config.UpdateGlobal(func(conf *Config) {conf.RuleTest.PrintStats = false})
func UpdateGlobal(f func(conf *Config)) {
	g := GetGlobalConfig()
	newConf := g.Clone()
	f(newConf)
	StoreGlobalConfig(newConf)
}

// RestoreFunc gets a function that restore the config to the current value.
func RestoreFunc() (restore func()) {
	g := GetGlobalConfig()
	return func() {
		StoreGlobalConfig(g)
	}
}

// Clone deeply clones the config.
func (c *Config) Clone() *Config {
	conf := *c
	conf.RuleTest.SystemProperties = maps.Clone(c.RuleTest.SystemProperties)
	return &conf
}

// Load loads config options from a toml file.
func (c *Config) Load(confFile string) error {
	metaData, err := toml.DecodeFile(confFile, c)
	if err != nil {
		return errors.Trace(err)
	}
	if undecoded := metaData.Undecoded(); len(undecoded) > 0 {
		items := make([]string, 0, len(undecoded))
		for _, item := range undecoded {
			items = append(items, item.String())
		}
		return ErrConfigValidationFailed.GenWithStackByArgs(confFile, strings.Join(items, ", "))
	}
	return nil
}

// Valid checks if this config is valid.
func (c *Config) Valid() error {
	if c.RuleTest.PlanIndent < 0 {
		return errors.Errorf("plan-indent should be non-negative, got %d", c.RuleTest.PlanIndent)
	}
	if c.RuleTest.User == "" {
		return errors.New("user should not be empty")
	}
	for name, value := range c.RuleTest.SystemProperties {
		if _, err := variable.ValidateSysVar(name, value); err != nil {
			return err
		}
	}
	return nil
}

// ToLogConfig converts *Log to *logutil.LogConfig.
func (l *Log) ToLogConfig() *logutil.LogConfig {
	return logutil.NewLogConfig(l.Level, l.Format, l.File, l.DisableTimestamp)
}

// String implements fmt.Stringer interface.
func (c *Config) String() string {
	content, err := json.Marshal(c)
	if err != nil {
		return "<invalid config>"
	}
	return string(content)
}

// InitializeConfig loads confPath into a new config, validates it and makes
// it the global config. An empty path keeps the defaults.
func InitializeConfig(confPath string) error {
	conf := NewConfig()
	if confPath != "" {
		if err := conf.Load(confPath); err != nil {
			return err
		}
	}
	if err := conf.Valid(); err != nil {
		return err
	}
	StoreGlobalConfig(conf)
	return logutil.ReplaceLogger(conf.Log.ToLogConfig())
}
