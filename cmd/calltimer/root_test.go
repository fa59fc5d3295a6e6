package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(t *testing.T, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
log_level: "error"
demo:
  process_data_delay_ms: 0
  add_numbers_delay_ms: 0
` + extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_DemoOutput(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), fastConfig(t, ""), &out))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Processing data...", lines[0])
	assert.Regexp(t, `^Finished 'process_data' in \d+\.\d{4} seconds$`, lines[1])
	assert.Regexp(t, `^Finished 'add_numbers' in \d+\.\d{4} seconds$`, lines[2])
	assert.Equal(t, "Result: 30", lines[3])
}

func TestRun_ConsoleDisabled(t *testing.T) {
	var out bytes.Buffer
	cfg := fastConfig(t, `
report:
  console: false
`)
	require.NoError(t, run(context.Background(), cfg, &out))

	assert.Equal(t, "Processing data...\nResult: 30\n", out.String())
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("CALLTIMER_LOG_LEVEL", "loud")

	var out bytes.Buffer
	err := run(context.Background(), fastConfig(t, ""), &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "log_level")
	assert.Empty(t, out.String())
}

func TestRootCmd_ErrorNotPrintedByCobra(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
	// main reports the error once; cobra must stay quiet
	assert.Empty(t, errOut.String())
}

func TestRun_LogReportEnabled(t *testing.T) {
	var out bytes.Buffer
	cfg := fastConfig(t, `
report:
  log: true
`)
	require.NoError(t, run(context.Background(), cfg, &out))
	assert.Contains(t, out.String(), "Result: 30")
}

func TestRun_MetricsServerStopsOnContextCancel(t *testing.T) {
	var out bytes.Buffer
	cfg := fastConfig(t, `
metrics:
  enabled: true
  http_port: 39187
`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, run(ctx, cfg, &out))
	assert.Contains(t, out.String(), "Result: 30")
}

func TestRootCmd_Version(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "calltimer dev"))
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"unexpected"})

	assert.Error(t, cmd.Execute())
}
