package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.EDF.Driver)
	assert.Equal(t, 5000, cfg.EDF.PageSize)
	assert.Equal(t, 10, cfg.EDF.MaxConcurrentPages)
	assert.Equal(t, 20, cfg.EDF.RemotePageWorkers)
	assert.Equal(t, int32(20), cfg.EDF.MaxConns)
	assert.Equal(t, 8, cfg.Report.AccountWorkers)
	assert.Equal(t, 300, cfg.Report.TimeoutSecs)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TNRANGE_EDF_PAGE_SIZE", "100")
	t.Setenv("TNRANGE_REPORT_ACCOUNT_WORKERS", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.EDF.PageSize)
	assert.Equal(t, 4, cfg.Report.AccountWorkers)
}

func TestReportTimeout(t *testing.T) {
	c := ReportConfig{TimeoutSecs: 45}
	assert.Equal(t, 45*time.Second, c.Timeout())
}

func TestInitLoggerBadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	assert.Error(t, err)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	assert.NoError(t, err)
}
