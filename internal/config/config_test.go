package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"statreport/internal"
	"statreport/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir keeps a stray ./statreport.yaml from leaking into tests.
func inTempDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Server.Port)
	assert.Equal(t, 30*time.Minute, c.Server.UploadTTL)
	assert.Equal(t, 10, c.Report.MaxColumns)
	assert.Equal(t, "whitegrid", c.Charts.Theme)

	opts := c.ReportOptions()
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), opts.Timestamp)
	assert.Equal(t, 400.0, opts.ImageWidth)
	assert.Equal(t, 1.0, c.ReaderConfig().CoercionConfig.NumericThreshold)
	assert.Equal(t, internal.LogLevelInfo, c.LogLevel())
}

func TestLoadEnvOverrides(t *testing.T) {
	inTempDir(t)
	t.Setenv("PORT", "9000")
	t.Setenv("STATREPORT_CHARTS_THEME", "darkgrid")
	t.Setenv("STATREPORT_SERVER_UPLOAD_TTL", "5m")
	t.Setenv("LOG_LEVEL", "debug")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "9000", c.Server.Port)
	assert.Equal(t, "darkgrid", c.ChartOptions().DefaultTheme)
	assert.Equal(t, 5*time.Minute, c.Server.UploadTTL)
	assert.Equal(t, internal.LogLevelDebug, c.LogLevel())

	t.Setenv("STATREPORT_SERVER_PORT", "9100")
	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "9100", c.Server.Port)
}

func TestLoadFile(t *testing.T) {
	inTempDir(t)
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
report:
  title: Quarterly numbers
  max_columns: 6
data:
  sheet_name: Data
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Quarterly numbers", c.Report.Title)
	assert.Equal(t, 6, c.ReportOptions().MaxColumns)
	assert.Equal(t, "Data", c.ReaderConfig().SheetName)
	assert.Equal(t, 640, c.Charts.Width)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	inTempDir(t)
	tests := map[string]string{
		"STATREPORT_REPORT_MAX_COLUMNS":     "0",
		"STATREPORT_DATA_NUMERIC_THRESHOLD": "1.5",
		"STATREPORT_REPORT_TIMESTAMP":       "yesterday",
		"STATREPORT_LOGGING_LEVEL":          "LOUD",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load("")
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	inTempDir(t)
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")

	c, err := Load("")
	require.NoError(t, err)
	c.Charts.Theme = "ticks"
	c.Server.UploadTTL = time.Hour

	path := filepath.Join(t.TempDir(), "nested", "statreport.yaml")
	require.NoError(t, Save(c, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ticks", loaded.Charts.Theme)
	assert.Equal(t, time.Hour, loaded.Server.UploadTTL)
}
