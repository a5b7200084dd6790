package config

type Config struct {
	Bridge BridgeConfig `yaml:"bridge"`
}

type BridgeConfig struct {
	Serial   SerialConfig   `yaml:"serial"`
	Poll     PollConfig     `yaml:"poll"`
	HTTP     HTTPConfig     `yaml:"http"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Watchdog WatchdogConfig `yaml:"watchdog"`
	Mirror   MirrorConfig   `yaml:"mirror"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Device    string `yaml:"device"`
	BaudRate  int    `yaml:"baud_rate"`
	DataBits  int    `yaml:"data_bits"`
	Parity    string `yaml:"parity"` // N, E, O
	StopBits  int    `yaml:"stop_bits"`
	TimeoutMs int    `yaml:"timeout_ms"` // per-read wait while draining
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs     int `yaml:"interval_ms"`
	// StaleThreshold is a pointer so that an explicit 0 ("reset after the
	// first unanswered request") is kept apart from "unset".
	StaleThreshold *int `yaml:"stale_threshold"`
	DrainLimit     int `yaml:"drain_limit"`

	// CrossCheck drops frames whose kind does not match the last request.
	CrossCheck bool `yaml:"cross_check"`
}

// ---- HTTP ----

type HTTPConfig struct {
	Listen          string `yaml:"listen"`
	ReadTimeoutMs   int    `yaml:"read_timeout_ms"`
	MaxRequestBytes int    `yaml:"max_request_bytes"`
	AcceptPollMs    int    `yaml:"accept_poll_ms"`
}

// ---- DEFAULT PAYLOAD ----

type DefaultsConfig struct {
	OpMode      string `yaml:"opmode"`
	Legacy      bool   `yaml:"legacy"`
	OpData      string `yaml:"opdata"`
	ServiceData string `yaml:"servicedata"`
}

// ---- WATCHDOG ----

type WatchdogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Device  string `yaml:"device"`
}

// ---- MIRROR (Modbus TCP, opt-in) ----

type MirrorConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Endpoint   string `yaml:"endpoint"`
	UnitID     uint8  `yaml:"unit_id"`
	Address    uint16 `yaml:"address"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	DeviceName string `yaml:"device_name"`

	// RetryBackoffMs pauses mirror writes after a failure.
	RetryBackoffMs int `yaml:"retry_backoff_ms"`
}

// ---- METRICS ----

type MetricsConfig struct {
	Listen string `yaml:"listen"` // empty disables
}

// ---- LOGGING ----

type LoggingConfig struct {
	Level  string        `yaml:"level"`
	Format string        `yaml:"format"` // json | console
	File   LogFileConfig `yaml:"file"`
}

type LogFileConfig struct {
	Filename   string `yaml:"filename"` // empty: stdout only
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}
