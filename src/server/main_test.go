package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kalexmills/simple-utils/src/utilbot/db"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotConfig_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	conf, logConf := botConfig(v), logConfig(v)

	assert.Equal(t, "!util", conf.Prefix)
	assert.Equal(t, db.ConfigAll, conf.DefaultFlags)
	assert.Equal(t, "./simpleUtilsDB.sqlite3", conf.DBPath)
	assert.Equal(t, "info", logConf.Level)
	assert.Empty(t, logConf.File)
}

func TestBotConfig_Overrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("reverse", false)
	v.Set("recordHistory", false)
	v.Set("prefix", "?u")
	v.Set("debug", true)

	conf := botConfig(v)
	assert.Equal(t, "?u", conf.Prefix)
	assert.False(t, conf.DefaultFlags.Reverse())
	assert.False(t, conf.DefaultFlags.RecordHistory())
	assert.True(t, conf.DefaultFlags.CountWords())
	assert.True(t, conf.DefaultFlags.ConvertTemperature())
	assert.Equal(t, "debug", logConfig(v).Level)
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger(LogConfig{Level: "loud"})
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "bot.log")
	logger, err := newLogger(LogConfig{Level: "info", File: file, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)
	logger.Info("hello")
	logger.Debug("filtered")
	logger.Sync()

	contents, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(contents), `"msg":"hello"`)
	assert.NotContains(t, string(contents), "filtered")
}

func TestFatal_FlushesBeforeExit(t *testing.T) {
	var code int
	osExit = func(c int) { code = c }
	defer func() { osExit = os.Exit }()

	file := filepath.Join(t.TempDir(), "bot.log")
	logger, err := newLogger(LogConfig{Level: "info", File: file, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)

	fatal(logger, "no bot token configured")

	assert.Equal(t, 1, code)
	contents, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(contents), `"msg":"no bot token configured"`)
	assert.Contains(t, string(contents), `"level":"error"`)
}
