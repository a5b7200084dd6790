package frame

// Kind is the decode target chosen by Classify.
type Kind uint8

const (
	KindUnclassified Kind = iota
	KindModeLegacy
	KindModeModern
	KindOpData
	KindServiceData
)

func (k Kind) String() string {
	switch k {
	case KindModeLegacy:
		return "opmode_legacy"
	case KindModeModern:
		return "opmode"
	case KindOpData:
		return "opdata"
	case KindServiceData:
		return "servicedata"
	default:
		return "unclassified"
	}
}

// Request returns the request kind that normally produces a frame of kind k.
// ok is false for KindUnclassified.
func (k Kind) Request() (RequestKind, bool) {
	switch k {
	case KindModeLegacy, KindModeModern:
		return OperatingMode, true
	case KindOpData:
		return OperatingData, true
	case KindServiceData:
		return ServiceData, true
	default:
		return 0, false
	}
}

// Result is the outcome of one classification.
// Payload aliases the input slice (no copy); it excludes the leading and
// trailing framing byte.
type Result struct {
	Kind    Kind
	Payload []byte
}

// Classified reports whether the frame matched a known length.
func (r Result) Classified() bool {
	return r.Kind != KindUnclassified
}

// Legacy reports whether the frame is a single-character mode reply.
func (r Result) Legacy() bool {
	return r.Kind == KindModeLegacy
}

// Classify maps a raw frame to its decode target by length only.
// Marker bytes are not inspected: a corrupted or concatenated stream that
// happens to total a known length is accepted as that category.
func Classify(raw []byte) Result {
	switch len(raw) {
	case LenModeLegacy:
		return Result{Kind: KindModeLegacy, Payload: raw[1:2]}
	case LenModeModern:
		return Result{Kind: KindModeModern, Payload: raw[1 : 1+ModeChars]}
	case LenOpData:
		return Result{Kind: KindOpData, Payload: raw[1 : 1+OpDataChars]}
	case LenServiceData:
		return Result{Kind: KindServiceData, Payload: raw[1 : 1+ServiceDataChars]}
	default:
		return Result{Kind: KindUnclassified}
	}
}

// Matches reports whether r is a plausible reply to the request sent.
// Unclassified results never match.
func (r Result) Matches(sent RequestKind) bool {
	want, ok := r.Kind.Request()
	return ok && want == sent
}
