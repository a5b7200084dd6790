package status

import "github.com/tamzrod/esplus-bridge/internal/frame"

// Mirror register layout constants.
// These values define the mirror memory map and MUST NOT be configurable.
// Text is packed two ASCII bytes per register, big-endian.

// ---- STATUS BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of status registers ahead of the data.
const SlotsPerDevice = 20

// ---- STATUS SLOT INDICES ----

// SlotHealthCode holds the data freshness state.
const SlotHealthCode = 0

// SlotStaleCount holds the number of requests since the last decode.
const SlotStaleCount = 1

// SlotLegacyFormat is 1 when the controller answers with 1-char modes.
const SlotLegacyFormat = 2

// Slots 3–10 are reserved for future use.
const SlotReservedStart = 3
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name is always placed at the END of the status block.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- DATA REGION ----

// Register counts of the packed text fields (rounded up).
const (
	RegsOpMode      = (frame.ModeChars + 1) / 2        // 2
	RegsOpData      = (frame.OpDataChars + 1) / 2      // 10
	RegsServiceData = (frame.ServiceDataChars + 1) / 2 // 107
)

// Data region offsets, relative to the block base.
const (
	OffsetOpMode      = SlotsPerDevice
	OffsetOpData      = OffsetOpMode + RegsOpMode
	OffsetServiceData = OffsetOpData + RegsOpData

	// BlockRegs is the full mirror size: status block plus data region.
	BlockRegs = OffsetServiceData + RegsServiceData
)

// ---- HEALTH CODES ----

// HealthUnknown represents the boot state before any decode.
const HealthUnknown uint16 = 0

// HealthOK represents fresh data.
const HealthOK uint16 = 1

// HealthStale represents data replaced by defaults after controller silence.
const HealthStale uint16 = 3
