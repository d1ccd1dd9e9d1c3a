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

package logutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLoggerLevel(t *testing.T) {
	defer resetLogger(t)

	conf := NewLogConfig("warn", DefaultLogFormat, FileLogConfig{}, false)
	require.NoError(t, InitLogger(conf))
	require.False(t, BgLogger().Core().Enabled(zap.InfoLevel))
	require.True(t, BgLogger().Core().Enabled(zap.WarnLevel))
	require.True(t, RuleTestLogger().Core().Enabled(zap.ErrorLevel))
}

func TestInitLoggerWithFile(t *testing.T) {
	defer resetLogger(t)

	fileCfg := NewFileLogConfig(DefaultLogMaxSize)
	fileCfg.Filename = filepath.Join(t.TempDir(), "ruletest.log")
	conf := NewLogConfig("debug", "json", fileCfg, true)
	require.NoError(t, ReplaceLogger(conf))
	require.True(t, BgLogger().Core().Enabled(zap.DebugLevel))
}

func TestInitLoggerBadLevel(t *testing.T) {
	conf := NewLogConfig("not-a-level", DefaultLogFormat, FileLogConfig{}, false)
	require.Error(t, InitLogger(conf))
}

func resetLogger(t *testing.T) {
	require.NoError(t, InitLogger(NewLogConfig(DefaultLogLevel, DefaultLogFormat, FileLogConfig{}, false)))
}
