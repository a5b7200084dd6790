package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/esplus-bridge/internal/status"
)

// maxRegsPerWrite is the Modbus limit for Write Multiple Registers (FC16).
const maxRegsPerWrite = 123

// field is one text field of the data region.
type field struct {
	name string
	off  int // relative to block base
	n    int
}

var dataFields = []field{
	{"opmode", status.OffsetOpMode, status.RegsOpMode},
	{"opdata", status.OffsetOpData, status.RegsOpData},
	{"servicedata", status.OffsetServiceData, status.RegsServiceData},
}

// mirrorWriter delivers snapshots into one register block.
// The first write, and the first write after any failure, re-asserts the
// full block; otherwise only changed slots and fields are written.
type mirrorWriter struct {
	plan Plan
	cli  endpointClient

	needFull   bool
	lastHealth status.Health
	lastLegacy bool
	lastData   []uint16
}

// New builds a mirror writer.
func New(plan Plan, cli endpointClient) (Writer, error) {
	if cli == nil {
		return nil, fmt.Errorf("writer: missing client for endpoint %s", plan.Endpoint)
	}
	if int(plan.Address)+status.BlockRegs > 0x10000 {
		return nil, fmt.Errorf("writer: block at %d does not fit the register space", plan.Address)
	}
	return &mirrorWriter{plan: plan, cli: cli, needFull: true}, nil
}

func (w *mirrorWriter) Write(s status.Snapshot, h status.Health) error {
	data := status.Encode(s)

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if w.needFull {
		regs := append(status.EncodeStatus(h, s.Legacy, w.plan.DeviceName), data...)
		if err := w.writeChunked(w.plan.Address, regs); err != nil {
			w.needFull = true
			return fmt.Errorf("writer: full block write failed: %w", err)
		}
		w.needFull = false
		w.lastHealth = h
		w.lastLegacy = s.Legacy
		w.lastData = data
		return nil
	}

	var errs []string

	if err := w.writeStatusDelta(h, s.Legacy); err != nil {
		errs = append(errs, err.Error())
	}

	for _, f := range dataFields {
		lo := f.off - status.SlotsPerDevice
		cur := data[lo : lo+f.n]
		if equalRegs(cur, w.lastData[lo:lo+f.n]) {
			continue
		}
		if err := w.writeChunked(w.plan.Address+uint16(f.off), cur); err != nil {
			errs = append(errs, fmt.Sprintf("%s write failed: %v", f.name, err))
			continue
		}
		copy(w.lastData[lo:lo+f.n], cur)
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt — re-assert on next success.
		w.needFull = true
		return errors.New("writer: " + strings.Join(errs, " | "))
	}
	return nil
}

// writeChunked splits regs into FC16-sized writes.
func (w *mirrorWriter) writeChunked(addr uint16, regs []uint16) error {
	for len(regs) > 0 {
		n := len(regs)
		if n > maxRegsPerWrite {
			n = maxRegsPerWrite
		}
		if err := w.cli.WriteRegisters(w.plan.UnitID, addr, regs[:n]); err != nil {
			return fmt.Errorf("ep=%s unit=%d addr=%d qty=%d: %w", w.plan.Endpoint, w.plan.UnitID, addr, n, err)
		}
		addr += uint16(n)
		regs = regs[n:]
	}
	return nil
}

func equalRegs(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
