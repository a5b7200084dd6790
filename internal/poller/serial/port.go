package serial

import (
	"errors"
	"fmt"
	"time"

	gserial "github.com/goburrow/serial"
)

// Port implements poller.Transport on a local serial device.
// A read that times out is reported as (0, nil): "nothing buffered".
type Port struct {
	port    gserial.Port
	address string
}

// Config is minimal transport config.
type Config struct {
	Device   string
	BaudRate int
	DataBits int
	Parity   string // N, E, O
	StopBits int
	Timeout  time.Duration
}

// Open configures and opens the serial device.
func Open(cfg Config) (*Port, error) {
	if cfg.Device == "" {
		return nil, errors.New("serial: device required")
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("serial: timeout must be > 0")
	}

	p, err := gserial.Open(&gserial.Config{
		Address:  cfg.Device,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		StopBits: cfg.StopBits,
		Parity:   cfg.Parity,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", cfg.Device, err)
	}

	return &Port{port: p, address: cfg.Device}, nil
}

// Read reads at most len(b) bytes.
func (p *Port) Read(b []byte) (int, error) {
	n, err := p.port.Read(b)
	if errors.Is(err, gserial.ErrTimeout) {
		return n, nil
	}
	return n, err
}

// Write writes one command to the controller.
func (p *Port) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close closes the device.
func (p *Port) Close() error {
	if p == nil || p.port == nil {
		return nil
	}
	return p.port.Close()
}

// Address returns the device path.
func (p *Port) Address() string { return p.address }
