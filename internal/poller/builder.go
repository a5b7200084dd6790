package poller

import (
	"time"

	cfg "github.com/tamzrod/esplus-bridge/internal/config"
	pserial "github.com/tamzrod/esplus-bridge/internal/poller/serial"
	"github.com/tamzrod/esplus-bridge/internal/status"
)

// Build constructs a Poller on the configured serial device.
// Config must already be validated and normalized.
// The returned closer releases the device.
func Build(b cfg.BridgeConfig, store *status.Store) (*Poller, func() error, error) {
	port, err := pserial.Open(pserial.Config{
		Device:   b.Serial.Device,
		BaudRate: b.Serial.BaudRate,
		DataBits: b.Serial.DataBits,
		Parity:   b.Serial.Parity,
		StopBits: b.Serial.StopBits,
		Timeout:  time.Duration(b.Serial.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	p, err := New(ConfigFrom(b.Poll), port, store)
	if err != nil {
		_ = port.Close()
		return nil, nil, err
	}

	return p, port.Close, nil
}

// ConfigFrom converts the poll section into runtime config.
func ConfigFrom(pc cfg.PollConfig) Config {
	return Config{
		Interval:       time.Duration(pc.IntervalMs) * time.Millisecond,
		StaleThreshold: staleThreshold(pc),
		DrainLimit:     pc.DrainLimit,
	}
}

// staleThreshold reads the normalized threshold; nil only happens when
// Normalize was skipped.
func staleThreshold(pc cfg.PollConfig) int {
	if pc.StaleThreshold == nil {
		return cfg.DefaultStaleThreshold
	}
	return *pc.StaleThreshold
}
