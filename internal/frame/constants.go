package frame

// Wire constants of the ES+ serial protocol.
// These values define the protocol and MUST NOT be configurable.

// ---- MARKERS ----

// STX starts every frame.
const STX byte = 0x02

// ETX ends every frame.
const ETX byte = 0x03

// ---- FRAME LENGTHS (total, markers included) ----

// LenModeLegacy is the mode reply of firmware older than 2.10.
const LenModeLegacy = 3

// LenModeModern is the mode reply of firmware 2.10 and newer.
const LenModeModern = 6

// LenOpData is the operating-data reply.
const LenOpData = 21

// LenServiceData is the service-data reply.
const LenServiceData = 216

// MaxFrame is the largest byte count one drain pass may collect.
const MaxFrame = 217

// ---- PAYLOAD LENGTHS (markers stripped) ----

const (
	ModeChars        = LenModeModern - 2  // 4
	OpDataChars      = LenOpData - 2      // 19
	ServiceDataChars = LenServiceData - 2 // 214
)

// RequestLen is the size of every outbound command.
const RequestLen = 4
