package modbus

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// EndpointClient writes holding registers on one Modbus TCP endpoint.
// The handler dials lazily on the next request after the connection was
// closed; any failed request closes it, so a late reply to a timed-out
// request can never be taken for the answer to the following one.
type EndpointClient struct {
	mu      sync.Mutex
	client  modbus.Client
	conn    io.Closer
	setUnit func(uint8)
}

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

func NewEndpointClient(cfg Config) (*EndpointClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("writer modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout

	return &EndpointClient{
		client:  modbus.NewClient(h),
		conn:    h,
		setUnit: func(id uint8) { h.SlaveId = id },
	}, nil
}

func (c *EndpointClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// WriteRegisters issues one FC16 write. The caller keeps qty within 123.
func (c *EndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	if len(regs) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setUnit(unitID)

	if _, err := c.client.WriteMultipleRegisters(addr, uint16(len(regs)), packRegisters(regs)); err != nil {
		_ = c.conn.Close()
		return fmt.Errorf("writer modbus: fc16 addr=%d qty=%d: %w", addr, len(regs), err)
	}
	return nil
}

// Modbus register memory order (BIG-ENDIAN)
func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
