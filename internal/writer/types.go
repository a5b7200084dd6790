package writer

import "github.com/tamzrod/esplus-bridge/internal/status"

// Plan is the fully-built mirror destination.
type Plan struct {
	Endpoint   string
	UnitID     uint8
	Address    uint16 // base holding register of the block
	DeviceName string
}

// Writer mirrors snapshots into a register memory.
type Writer interface {
	Write(s status.Snapshot, h status.Health) error
}

// endpointClient is the exact contract the writer uses.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}
