package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/esplus-bridge/internal/status"
)

// writeStatusDelta writes the status slots that changed since the last
// successful write. The device name is only written on full re-assert.
func (w *mirrorWriter) writeStatusDelta(h status.Health, legacy bool) error {
	base := w.plan.Address
	var errs []string

	// Slot 0 — health_code
	if w.lastHealth.Code != h.Code {
		if err := w.cli.WriteRegisters(w.plan.UnitID, base+status.SlotHealthCode, []uint16{h.Code}); err != nil {
			errs = append(errs, fmt.Sprintf("slot0 health write failed: %v", err))
		} else {
			w.lastHealth.Code = h.Code
		}
	}

	// Slot 1 — stale_count
	if w.lastHealth.StaleCount != h.StaleCount {
		if err := w.cli.WriteRegisters(w.plan.UnitID, base+status.SlotStaleCount, []uint16{h.StaleCount}); err != nil {
			errs = append(errs, fmt.Sprintf("slot1 stale_count write failed: %v", err))
		} else {
			w.lastHealth.StaleCount = h.StaleCount
		}
	}

	// Slot 2 — legacy_format
	if w.lastLegacy != legacy {
		var v uint16
		if legacy {
			v = 1
		}
		if err := w.cli.WriteRegisters(w.plan.UnitID, base+status.SlotLegacyFormat, []uint16{v}); err != nil {
			errs = append(errs, fmt.Sprintf("slot2 legacy write failed: %v", err))
		} else {
			w.lastLegacy = legacy
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}
	return nil
}

// HealthFor derives the status block health from the loop state.
// stale wins over decoded; the stale count saturates at 65535.
func HealthFor(decoded, stale bool, staleCount int) status.Health {
	h := status.Health{Code: status.HealthUnknown}
	switch {
	case stale:
		h.Code = status.HealthStale
	case decoded:
		h.Code = status.HealthOK
	}
	switch {
	case staleCount > 65535:
		h.StaleCount = 65535
	case staleCount > 0:
		h.StaleCount = uint16(staleCount)
	}
	return h
}
