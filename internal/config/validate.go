package config

import (
	"fmt"
	"strings"

	"github.com/tamzrod/esplus-bridge/internal/frame"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values are accepted wherever Normalize supplies a default.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}
	b := cfg.Bridge

	// ------------------------------------------------------------
	// SERIAL TRANSPORT
	// ------------------------------------------------------------

	if strings.TrimSpace(b.Serial.Device) == "" {
		return fmt.Errorf("serial: device is required")
	}
	if b.Serial.DataBits != 0 && (b.Serial.DataBits < 5 || b.Serial.DataBits > 8) {
		return fmt.Errorf("serial: data_bits must be 5..8, got %d", b.Serial.DataBits)
	}
	switch b.Serial.Parity {
	case "", "N", "E", "O":
	default:
		return fmt.Errorf("serial: parity must be N, E or O, got %q", b.Serial.Parity)
	}
	switch b.Serial.StopBits {
	case 0, 1, 2:
	default:
		return fmt.Errorf("serial: stop_bits must be 1 or 2, got %d", b.Serial.StopBits)
	}

	if err := nonNegative(map[string]int{
		"serial.baud_rate":        b.Serial.BaudRate,
		"serial.timeout_ms":       b.Serial.TimeoutMs,
		"poll.interval_ms":        b.Poll.IntervalMs,
		"poll.drain_limit":        b.Poll.DrainLimit,
		"http.read_timeout_ms":    b.HTTP.ReadTimeoutMs,
		"http.max_request_bytes":  b.HTTP.MaxRequestBytes,
		"http.accept_poll_ms":     b.HTTP.AcceptPollMs,
		"mirror.timeout_ms":       b.Mirror.TimeoutMs,
		"mirror.retry_backoff_ms": b.Mirror.RetryBackoffMs,
	}); err != nil {
		return err
	}

	if b.Poll.StaleThreshold != nil && *b.Poll.StaleThreshold < 0 {
		return fmt.Errorf("poll.stale_threshold must be >= 0, got %d", *b.Poll.StaleThreshold)
	}

	// ------------------------------------------------------------
	// DEFAULT PAYLOAD (fixed-length text fields)
	// ------------------------------------------------------------

	d := b.Defaults
	switch len(d.OpMode) {
	case 0, 1, frame.ModeChars:
	default:
		return fmt.Errorf("defaults: opmode must be 1 or %d characters, got %d", frame.ModeChars, len(d.OpMode))
	}
	if d.Legacy && len(d.OpMode) > 1 {
		return fmt.Errorf("defaults: legacy opmode must be a single character, got %q", d.OpMode)
	}
	if len(d.OpData) > frame.OpDataChars {
		return fmt.Errorf("defaults: opdata longer than %d characters", frame.OpDataChars)
	}
	if len(d.ServiceData) > frame.ServiceDataChars {
		return fmt.Errorf("defaults: servicedata longer than %d characters", frame.ServiceDataChars)
	}
	for name, v := range map[string]string{
		"opmode":      d.OpMode,
		"opdata":      d.OpData,
		"servicedata": d.ServiceData,
	} {
		if !isASCII(v) {
			return fmt.Errorf("defaults: %s must contain ASCII characters only", name)
		}
	}

	// ------------------------------------------------------------
	// MIRROR (OPT-IN)
	// ------------------------------------------------------------

	if b.Mirror.Enabled {
		if b.Mirror.Endpoint == "" {
			return fmt.Errorf("mirror: endpoint is required when enabled")
		}
		// Each mirror request blocks the loop; keep it well inside the
		// poll schedule and any watchdog timeout.
		if b.Mirror.TimeoutMs > MaxMirrorTimeoutMs {
			return fmt.Errorf("mirror: timeout_ms must be <= %d, got %d", MaxMirrorTimeoutMs, b.Mirror.TimeoutMs)
		}
		if !isASCII(b.Mirror.DeviceName) {
			return fmt.Errorf("mirror: device_name must contain ASCII characters only")
		}
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	switch strings.ToLower(b.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging: unknown level %q", b.Logging.Level)
	}
	switch strings.ToLower(b.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging: unknown format %q", b.Logging.Format)
	}

	return nil
}

// MaxMirrorTimeoutMs bounds a single blocking mirror request.
const MaxMirrorTimeoutMs = 2000

func nonNegative(fields map[string]int) error {
	for name, v := range fields {
		if v < 0 {
			return fmt.Errorf("%s must be >= 0, got %d", name, v)
		}
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return false
		}
	}
	return true
}
