package writer

import (
	"time"

	cfg "github.com/tamzrod/esplus-bridge/internal/config"
	wmodbus "github.com/tamzrod/esplus-bridge/internal/writer/modbus"
)

// BuildPlan converts the mirror config into a Plan.
// Assumes config has already been validated and normalized.
func BuildPlan(m cfg.MirrorConfig) Plan {
	return Plan{
		Endpoint:   m.Endpoint,
		UnitID:     m.UnitID,
		Address:    m.Address,
		DeviceName: m.DeviceName,
	}
}

// Build creates the mirror writer and its Modbus TCP client.
// The closer releases the connection.
func Build(m cfg.MirrorConfig) (Writer, func() error, error) {
	plan := BuildPlan(m)

	c, err := wmodbus.NewEndpointClient(wmodbus.Config{
		Endpoint: plan.Endpoint,
		Timeout:  time.Duration(m.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	w, err := New(plan, c)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return w, c.Close, nil
}
