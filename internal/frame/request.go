package frame

// RequestKind selects one of the three controller queries.
type RequestKind uint8

const (
	OperatingMode RequestKind = iota
	OperatingData
	ServiceData

	numKinds
)

// commands holds the two-character command code per kind.
var commands = [numKinds][2]byte{
	OperatingMode: {'m', 'm'},
	OperatingData: {'o', 'o'},
	ServiceData:   {'B', 'B'},
}

// Next returns the kind that follows k in the poll cycle.
// Mode -> Data -> Service -> Mode.
func (k RequestKind) Next() RequestKind {
	return (k + 1) % numKinds
}

// Valid reports whether k is one of the three known kinds.
func (k RequestKind) Valid() bool {
	return k < numKinds
}

func (k RequestKind) String() string {
	switch k {
	case OperatingMode:
		return "opmode"
	case OperatingData:
		return "opdata"
	case ServiceData:
		return "servicedata"
	default:
		return "unknown"
	}
}

// EncodeRequest returns the 4-byte command <STX> c c <ETX> for k.
// Out-of-range kinds wrap to OperatingMode.
func EncodeRequest(k RequestKind) [RequestLen]byte {
	if !k.Valid() {
		k = OperatingMode
	}
	c := commands[k]
	return [RequestLen]byte{STX, c[0], c[1], ETX}
}
