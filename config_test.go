package linelog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golift.io/linelog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	config := linelog.DefaultConfig()
	assert.Equal(linelog.DefaultFileName, config.FileName)
	assert.Equal(linelog.Rotation{}, config.Rotation, "rotation must be off by default")
	assert.Equal(linelog.UTC, config.Timezone)
	assert.Equal(linelog.DefaultTimePattern, config.TimePattern)
	assert.Equal(linelog.Private, config.Location)
	assert.Equal(linelog.FileMode, config.FileMode)
	assert.Equal(linelog.DirMode, config.DirMode)
	assert.NotNil(config.Now)
	assert.NotNil(config.Sink)
	assert.NotNil(config.Filer)
}

func TestBuilder(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal(linelog.DefaultConfig().FileName, linelog.NewBuilder().Build().FileName)

	builder := linelog.NewBuilder().
		FileName("TejaLogs").
		Limit(true, 15).
		TimeFormat(false, "dd-MMM-yyyy hh:mm:ss aa").
		ExternalStorage(true).
		PublicDir("/srv/shared")
	config := builder.Build()

	assert.Equal("TejaLogs", config.FileName)
	assert.Equal(linelog.Rotation{Enabled: true, MaxLines: 15}, config.Rotation)
	assert.Equal(linelog.Local, config.Timezone)
	assert.Equal("dd-MMM-yyyy hh:mm:ss aa", config.TimePattern)
	assert.Equal(linelog.Public, config.Location)
	assert.Equal("/srv/shared", config.PublicDir)

	// Built configs are copies.
	again := builder.FileName("Other").ExternalStorage(false).Build()
	assert.Equal("TejaLogs", config.FileName)
	assert.Equal("Other", again.FileName)
	assert.Equal(linelog.Private, again.Location)
}

func TestReadConfigFile(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	dir := t.TempDir()

	yamlFile := filepath.Join(dir, "logger.yml")
	require.NoError(t, os.WriteFile(yamlFile, []byte(`file_name: TejaLogs
rotation:
  enabled: true
  max_lines: 15
timezone: local
time_pattern: "hh:mm:ss aa"
`), 0o600))

	config, err := linelog.ReadConfigFile(yamlFile)
	require.NoError(t, err)
	assert.Equal("TejaLogs", config.FileName)
	assert.Equal(linelog.Rotation{Enabled: true, MaxLines: 15}, config.Rotation)
	assert.Equal(linelog.Local, config.Timezone)
	assert.Equal("hh:mm:ss aa", config.TimePattern)
	assert.Equal(linelog.Private, config.Location, "missing keys keep their defaults")
	assert.Equal(linelog.FileMode, config.FileMode)

	jsonFile := filepath.Join(dir, "logger.json")
	require.NoError(t, os.WriteFile(jsonFile,
		[]byte(`{"file_name":"svc","location":"public","public_dir":"/tmp/pub"}`), 0o600))

	config, err = linelog.ReadConfigFile(jsonFile)
	require.NoError(t, err)
	assert.Equal("svc", config.FileName)
	assert.Equal(linelog.Public, config.Location)
	assert.Equal("/tmp/pub", config.PublicDir)
	assert.Equal(linelog.UTC, config.Timezone)
	assert.False(config.Rotation.Enabled)
}

func TestReadConfigFileErrors(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	dir := t.TempDir()

	_, err := linelog.ReadConfigFile(filepath.Join(dir, "logger.toml"))
	assert.ErrorIs(err, linelog.ErrUnsupportedFormat)

	_, err = linelog.ReadConfigFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("timezone: mars\n"), 0o600))
	_, err = linelog.ReadConfigFile(bad)
	assert.ErrorIs(err, linelog.ErrInvalidConfig)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0o600))
	_, err = linelog.ReadConfigFile(broken)
	assert.Error(err)
}

func TestLevels(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	for name, level := range map[string]linelog.Level{
		"info":    linelog.LevelInfo,
		"VERBOSE": linelog.LevelVerbose,
		" Debug ": linelog.LevelDebug,
		"warn":    linelog.LevelWarn,
	} {
		parsed, err := linelog.ParseLevel(name)
		assert.NoError(err)
		assert.Equal(level, parsed, name)
	}

	_, err := linelog.ParseLevel("error")
	assert.ErrorIs(err, linelog.ErrInvalidConfig)
	assert.Equal("LEVEL(9)", linelog.Level(9).String())
}
