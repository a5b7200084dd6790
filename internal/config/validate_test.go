package config

import (
	"strings"
	"testing"
)

// helper to build a minimal valid config quickly
func minimal() *Config {
	return &Config{
		Bridge: BridgeConfig{
			Serial: SerialConfig{Device: "/dev/ttyUSB0"},
		},
	}
}

// ---- tests ----

func TestValidate_MinimalOK(t *testing.T) {
	if err := Validate(minimal()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_DeviceRequired(t *testing.T) {
	cfg := minimal()
	cfg.Bridge.Serial.Device = "  "

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected device error, got nil")
	}
}

func TestValidate_BadParity(t *testing.T) {
	cfg := minimal()
	cfg.Bridge.Serial.Parity = "X"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected parity error, got nil")
	}
}

func TestValidate_BadDataBits(t *testing.T) {
	cfg := minimal()
	cfg.Bridge.Serial.DataBits = 9

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected data_bits error, got nil")
	}
}

func TestValidate_NegativeInterval(t *testing.T) {
	cfg := minimal()
	cfg.Bridge.Poll.IntervalMs = -1

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected interval error, got nil")
	}
}

func TestValidate_OpModeLength(t *testing.T) {
	cfg := minimal()
	cfg.Bridge.Defaults.OpMode = "11"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected opmode length error, got nil")
	}
}

func TestValidate_LegacyOpModeSingleChar(t *testing.T) {
	cfg := minimal()
	cfg.Bridge.Defaults.OpMode = "110D"
	cfg.Bridge.Defaults.Legacy = true

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected legacy opmode error, got nil")
	}
}

func TestValidate_ServiceDataTooLong(t *testing.T) {
	cfg := minimal()
	cfg.Bridge.Defaults.ServiceData = strings.Repeat("0", 215)

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected servicedata length error, got nil")
	}
}

func TestValidate_NonASCIIDefault(t *testing.T) {
	cfg := minimal()
	cfg.Bridge.Defaults.OpData = "ÄÖÜ"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected ASCII error, got nil")
	}
}

func TestValidate_MirrorNeedsEndpoint(t *testing.T) {
	cfg := minimal()
	cfg.Bridge.Mirror.Enabled = true

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected mirror endpoint error, got nil")
	}

	cfg.Bridge.Mirror.Endpoint = "127.0.0.1:502"
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := minimal()
	before := *cfg

	_ = Validate(cfg)

	if *cfg != before {
		t.Fatalf("Validate mutated config")
	}
}

func TestValidate_MirrorTimeoutBounded(t *testing.T) {
	cfg := minimal()
	cfg.Bridge.Mirror.Enabled = true
	cfg.Bridge.Mirror.Endpoint = "127.0.0.1:502"
	cfg.Bridge.Mirror.TimeoutMs = MaxMirrorTimeoutMs + 1

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected mirror timeout error, got nil")
	}

	cfg.Bridge.Mirror.TimeoutMs = MaxMirrorTimeoutMs
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
