package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleYAML = `
bridge:
  serial:
    device: /dev/ttyS0
  poll:
    interval_ms: 350
  mirror:
    enabled: true
    endpoint: 10.0.0.5:502
    device_name: "ES+ boiler room heat pump"
`

func TestParse_UnknownKeyRejected(t *testing.T) {
	_, err := Parse([]byte("bridge:\n  bogus: 1\n"))
	require.Error(t, err)
}

func TestNormalize_FillsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	Normalize(cfg)
	b := cfg.Bridge

	require.Equal(t, DefaultBaudRate, b.Serial.BaudRate)
	require.Equal(t, 7, b.Serial.DataBits)
	require.Equal(t, "N", b.Serial.Parity)
	require.Equal(t, 1, b.Serial.StopBits)

	require.Equal(t, 350, b.Poll.IntervalMs) // explicit value kept
	require.NotNil(t, b.Poll.StaleThreshold)
	require.Equal(t, DefaultStaleThreshold, *b.Poll.StaleThreshold)

	require.Equal(t, ":8080", b.HTTP.Listen)
	require.Equal(t, DefaultMaxRequestBytes, b.HTTP.MaxRequestBytes)

	require.Equal(t, SampleOpMode, b.Defaults.OpMode)
	require.Len(t, b.Defaults.ServiceData, 214)

	require.Equal(t, "ES+ boiler room ", b.Mirror.DeviceName)
	require.Equal(t, DefaultMirrorTimeoutMs, b.Mirror.TimeoutMs)
	require.Equal(t, DefaultMirrorRetryBackoffMs, b.Mirror.RetryBackoffMs)

	require.Equal(t, "info", b.Logging.Level)
	require.Equal(t, "json", b.Logging.Format)
}

func TestNormalize_KeepsExplicitDefaults(t *testing.T) {
	cfg := minimal()
	cfg.Bridge.Defaults = DefaultsConfig{OpMode: "5", Legacy: true}

	Normalize(cfg)

	require.Equal(t, "5", cfg.Bridge.Defaults.OpMode)
	require.True(t, cfg.Bridge.Defaults.Legacy)
	require.Empty(t, cfg.Bridge.Defaults.OpData)
}

func TestNormalize_WatchdogDevice(t *testing.T) {
	cfg := minimal()
	cfg.Bridge.Watchdog.Enabled = true

	Normalize(cfg)

	require.Equal(t, DefaultWatchdogDevice, cfg.Bridge.Watchdog.Device)
}

func TestNormalize_ExplicitZeroStaleThresholdKept(t *testing.T) {
	cfg, err := Parse([]byte("bridge:\n  serial:\n    device: /dev/ttyS0\n  poll:\n    stale_threshold: 0\n"))
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	Normalize(cfg)

	require.NotNil(t, cfg.Bridge.Poll.StaleThreshold)
	require.Equal(t, 0, *cfg.Bridge.Poll.StaleThreshold)
}

func TestValidate_NegativeStaleThreshold(t *testing.T) {
	cfg := minimal()
	v := -1
	cfg.Bridge.Poll.StaleThreshold = &v

	require.Error(t, Validate(cfg))
}
