package poller

import (
	"io"
	"time"

	"github.com/tamzrod/esplus-bridge/internal/frame"
)

// Transport is the byte link to the controller.
// Read must not block past the transport's own timeout; it returns
// (0, nil) when nothing is currently buffered.
type Transport interface {
	io.Reader
	io.Writer
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Interval       time.Duration
	StaleThreshold int

	// DrainLimit bounds the number of reads per Drain call.
	DrainLimit int
}

// Emission describes one request written by Tick.
type Emission struct {
	Kind       frame.RequestKind
	StaleCount int
	Err        error // write failure; the cycle still advanced
}
