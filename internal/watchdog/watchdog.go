// Package watchdog isolates the platform's hang-recovery timer.
//
// The bridge loop pulses a Pulser at the top of every iteration and right
// before and after servicing a network connection. If the platform sees no
// pulse within its timeout it resets the device, discarding all in-memory
// state; the poll cycle then restarts at the operating-mode request.
package watchdog

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// Pulser keeps the platform watchdog from firing.
type Pulser interface {
	Pulse() error
}

// Nop is used when no watchdog is wired.
type Nop struct{}

func (Nop) Pulse() error { return nil }

// Func adapts a function to Pulser.
type Func func() error

func (f Func) Pulse() error { return f() }

// magicClose disarms the Linux watchdog driver on a clean close
// (unless the kernel was built with nowayout).
const magicClose = 'V'

// Device drives a Linux watchdog character device such as /dev/watchdog.
// Opening the device arms the timer; every write counts as a pulse.
type Device struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// OpenDevice opens and arms the watchdog device at path.
func OpenDevice(path string) (*Device, error) {
	if path == "" {
		return nil, errors.New("watchdog: device path required")
	}
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("watchdog: open %s: %w", path, err)
	}
	return &Device{f: f, path: path}, nil
}

// Pulse writes one keepalive byte.
func (d *Device) Pulse() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.f == nil {
		return errors.New("watchdog: device closed")
	}
	if _, err := d.f.Write([]byte{0}); err != nil {
		return fmt.Errorf("watchdog: pulse %s: %w", d.path, err)
	}
	return nil
}

// Close disarms (magic close) and releases the device.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.f == nil {
		return nil
	}
	_, werr := d.f.Write([]byte{magicClose})
	cerr := d.f.Close()
	d.f = nil
	if werr != nil {
		return fmt.Errorf("watchdog: magic close %s: %w", d.path, werr)
	}
	return cerr
}
