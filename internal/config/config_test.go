package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"UCLA-Rocket-Project/NSRT/internal/commander"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nsrt.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
serial:
  port: COM12
  read_timeout: 500ms
metrics:
  enabled: true
instrument:
  weighting: DB_A
  sampling_frequency: 32000
  time_constant: 0.125
  user_id: bench-3
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "COM12", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.BaudRate)
	assert.Equal(t, 500*time.Millisecond, cfg.Serial.ReadTimeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9105", cfg.Metrics.Listen)
	assert.Equal(t, InstrumentConfig{
		Weighting:         "DB_A",
		SamplingFrequency: 32000,
		TimeConstant:      0.125,
		UserID:            "bench-3",
	}, cfg.Instrument)
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "serial: [oops"))
	assert.ErrorContains(t, err, "cannot parse yaml")
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Defaults()
	cfg.Serial.Port = ""
	cfg.Serial.BaudRate = 0
	cfg.Instrument = InstrumentConfig{
		Weighting:         "DB_B",
		SamplingFrequency: 44100,
		UserID:            strings.Repeat("u", 32),
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 5)
	assert.ErrorIs(t, err, commander.ErrPrecondition)
}
