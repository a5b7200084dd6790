package status

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode_PacksBigEndianASCII(t *testing.T) {
	regs := Encode(Snapshot{OpMode: "110D", OpData: "AB", ServiceData: "x"})

	require.Len(t, regs, BlockRegs-SlotsPerDevice)
	require.Equal(t, uint16('1')<<8|uint16('1'), regs[0])
	require.Equal(t, uint16('0')<<8|uint16('D'), regs[1])
	require.Equal(t, uint16('A')<<8|uint16('B'), regs[RegsOpMode])
	require.Equal(t, uint16('x')<<8, regs[RegsOpMode+RegsOpData])
}

func TestEncodeStatus(t *testing.T) {
	regs := EncodeStatus(Health{Code: HealthStale, StaleCount: 12}, true, "ES+ BOILER CELLAR-2")

	require.Len(t, regs, SlotsPerDevice)
	require.Equal(t, HealthStale, regs[SlotHealthCode])
	require.Equal(t, uint16(12), regs[SlotStaleCount])
	require.Equal(t, uint16(1), regs[SlotLegacyFormat])
	for i := SlotReservedStart; i <= SlotReservedEnd; i++ {
		require.Zerof(t, regs[i], "reserved slot %d", i)
	}
	// 16 chars max: "ES+ BOILER CELLA"
	require.Equal(t, uint16('L')<<8|uint16('A'), regs[SlotDeviceNameStart+SlotDeviceNameSlots-1])
}

func TestEncode_NonPrintableSanitized(t *testing.T) {
	regs := Encode(Snapshot{OpMode: "\x02A"})
	require.Equal(t, uint16('?')<<8|uint16('A'), regs[0])
}
