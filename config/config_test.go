package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StephenDWright/TeacherApps1/config"
	"github.com/StephenDWright/TeacherApps1/scale"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAddress, cfg.Address)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
address: ":9090"
tables:
  database: /var/lib/educalc/scales.db
editions:
  previous:
    name: pre-2023 salary scale
logging:
  level: debug
  format: console
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Address)
	assert.Equal(t, "/var/lib/educalc/scales.db", cfg.Tables.Database)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)

	info := cfg.EditionInfo()
	assert.Equal(t, "pre-2023 salary scale", info[scale.EditionPrevious].Name)
	assert.Equal(t, "current salary scale (sample data)", info[scale.EditionCurrent].Name)
	assert.Equal(t, config.SampleDataNote, info[scale.EditionCurrent].Note)
}

func TestDefault_LabelsBundledTablesAsSample(t *testing.T) {
	info := config.Default().EditionInfo()
	for _, e := range []scale.Edition{scale.EditionCurrent, scale.EditionPrevious} {
		assert.Contains(t, info[e].Name, "sample data")
		assert.Equal(t, config.SampleDataNote, info[e].Note)
		assert.NotContains(t, info[e].Note, "COLA")
	}
}

func TestLoad_RequiresTablePaths(t *testing.T) {
	path := writeConfig(t, `
tables:
  current: ""
  previous: ""
`)
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "address: [unterminated")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := config.NewLogger(config.LoggingConfig{Level: "info", Format: "json"}, "")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = config.NewLogger(config.LoggingConfig{Format: "console"}, "debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1), "debug override should enable debug level")

	_, err = config.NewLogger(config.LoggingConfig{Level: "loud"}, "")
	assert.Error(t, err)
	_, err = config.NewLogger(config.LoggingConfig{Format: "xml"}, "")
	assert.Error(t, err)
}

func TestNewLogger_OutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "logs", "server.log")
	logger, err := config.NewLogger(config.LoggingConfig{OutputFile: out}, "")
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
