package config

// Built-in defaults.
const (
	DefaultBaudRate  = 9600
	DefaultDataBits  = 7
	DefaultParity    = "N"
	DefaultStopBits  = 1
	DefaultTimeoutMs = 5

	DefaultIntervalMs     = 330
	DefaultStaleThreshold = 10
	DefaultDrainLimit     = 256

	DefaultListen          = ":8080"
	DefaultReadTimeoutMs   = 2000
	DefaultMaxRequestBytes = 8192
	DefaultAcceptPollMs    = 10

	DefaultWatchdogDevice = "/dev/watchdog"

	DefaultMirrorTimeoutMs      = 1000
	DefaultMirrorRetryBackoffMs = 5000

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Controller sample payload used when the config leaves defaults empty.
const (
	SampleOpMode      = "110D"
	SampleOpData      = "066F069E0B3F0A5C0BB"
	SampleServiceData = "0003$08633654#06633654#26633654#26633654#06633654#26633654#06633654#08626630#08626625#08619726$633654#631092$007713#024398#005008#000573#000000#000000#294555#153767#098633#036088#011938#000981$595962#626625$0051738"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	b := &cfg.Bridge

	// ---- serial ----
	setInt(&b.Serial.BaudRate, DefaultBaudRate)
	setInt(&b.Serial.DataBits, DefaultDataBits)
	setInt(&b.Serial.StopBits, DefaultStopBits)
	setInt(&b.Serial.TimeoutMs, DefaultTimeoutMs)
	if b.Serial.Parity == "" {
		b.Serial.Parity = DefaultParity
	}

	// ---- poll ----
	setInt(&b.Poll.IntervalMs, DefaultIntervalMs)
	if b.Poll.StaleThreshold == nil {
		v := DefaultStaleThreshold
		b.Poll.StaleThreshold = &v
	}
	setInt(&b.Poll.DrainLimit, DefaultDrainLimit)

	// ---- http ----
	if b.HTTP.Listen == "" {
		b.HTTP.Listen = DefaultListen
	}
	setInt(&b.HTTP.ReadTimeoutMs, DefaultReadTimeoutMs)
	setInt(&b.HTTP.MaxRequestBytes, DefaultMaxRequestBytes)
	setInt(&b.HTTP.AcceptPollMs, DefaultAcceptPollMs)

	// ---- default payload ----
	// An empty defaults section means "use the controller sample".
	if b.Defaults == (DefaultsConfig{}) {
		b.Defaults = DefaultsConfig{
			OpMode:      SampleOpMode,
			OpData:      SampleOpData,
			ServiceData: SampleServiceData,
		}
	}

	// ---- watchdog ----
	if b.Watchdog.Enabled && b.Watchdog.Device == "" {
		b.Watchdog.Device = DefaultWatchdogDevice
	}

	// ---- mirror ----
	if b.Mirror.Enabled {
		setInt(&b.Mirror.TimeoutMs, DefaultMirrorTimeoutMs)
		setInt(&b.Mirror.RetryBackoffMs, DefaultMirrorRetryBackoffMs)
		// ASCII already validated; truncate to 16 characters.
		if len(b.Mirror.DeviceName) > 16 {
			b.Mirror.DeviceName = b.Mirror.DeviceName[:16]
		}
	}

	// ---- logging ----
	if b.Logging.Level == "" {
		b.Logging.Level = DefaultLogLevel
	}
	if b.Logging.Format == "" {
		b.Logging.Format = DefaultLogFormat
	}
}

func setInt(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}
