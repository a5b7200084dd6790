package status

// Encode converts a Snapshot into the data region registers
// (opmode, opdata, servicedata), BlockRegs-SlotsPerDevice long.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, BlockRegs-SlotsPerDevice)

	packASCII(regs[OffsetOpMode-SlotsPerDevice:OffsetOpData-SlotsPerDevice], s.OpMode)
	packASCII(regs[OffsetOpData-SlotsPerDevice:OffsetServiceData-SlotsPerDevice], s.OpData)
	packASCII(regs[OffsetServiceData-SlotsPerDevice:], s.ServiceData)

	return regs
}

// EncodeStatus builds the full status block.
// name is truncated to DeviceNameMaxChars.
func EncodeStatus(h Health, legacy bool, name string) []uint16 {
	regs := make([]uint16, SlotsPerDevice)

	regs[SlotHealthCode] = h.Code
	regs[SlotStaleCount] = h.StaleCount
	if legacy {
		regs[SlotLegacyFormat] = 1
	}

	// Slots 3..10 are RESERVED → left as zero

	if len(name) > DeviceNameMaxChars {
		name = name[:DeviceNameMaxChars]
	}
	packASCII(regs[SlotDeviceNameStart:SlotDeviceNameStart+SlotDeviceNameSlots], name)

	return regs
}

// packASCII packs text into dst, two bytes per register, big-endian.
// Non-printable bytes become '?'. Unused bytes stay zero.
func packASCII(dst []uint16, text string) {
	for i := 0; i < len(dst)*2 && i < len(text); i++ {
		b := text[i]
		if b < 0x20 || b > 0x7E {
			b = '?'
		}
		if i%2 == 0 {
			dst[i/2] |= uint16(b) << 8
		} else {
			dst[i/2] |= uint16(b)
		}
	}
}
