package status

import (
	"github.com/tamzrod/esplus-bridge/internal/frame"
)

// Defaults is the fallback payload restored at startup and on staleness.
type Defaults struct {
	OpMode      string
	Legacy      bool
	OpData      string
	ServiceData string
}

// Store holds the single authoritative copy of the decoded state.
// Fields are fixed-capacity; decoding copies into them in place.
// Not safe for concurrent use: the bridge loop is the only caller.
type Store struct {
	serviceData [frame.ServiceDataChars]byte
	opMode      [frame.ModeChars]byte
	opData      [frame.OpDataChars]byte
	legacy      bool

	seq uint64

	def struct {
		serviceData [frame.ServiceDataChars]byte
		opMode      [frame.ModeChars]byte
		opData      [frame.OpDataChars]byte
		legacy      bool
	}
}

// NewStore builds a store already reset to d.
// Default texts are right-padded with spaces or truncated to their field size.
func NewStore(d Defaults) *Store {
	s := &Store{}
	fill(s.def.serviceData[:], d.ServiceData)
	fill(s.def.opMode[:], d.OpMode)
	fill(s.def.opData[:], d.OpData)
	s.def.legacy = d.Legacy
	s.Reset()
	return s
}

// Reset restores all fields and the format flag to the defaults.
// Seq only moves when something actually changed.
func (s *Store) Reset() {
	if s.IsDefault() {
		return
	}
	s.serviceData = s.def.serviceData
	s.opMode = s.def.opMode
	s.opData = s.def.opData
	s.legacy = s.def.legacy
	s.seq++
}

// IsDefault reports whether the store currently equals its defaults.
func (s *Store) IsDefault() bool {
	return s.serviceData == s.def.serviceData &&
		s.opMode == s.def.opMode &&
		s.opData == s.def.opData &&
		s.legacy == s.def.legacy
}

// Update overwrites the field selected by kind with text.
// It returns false (and changes nothing) for KindUnclassified or a
// text of the wrong length.
func (s *Store) Update(kind frame.Kind, text []byte) bool {
	switch kind {
	case frame.KindModeLegacy:
		if len(text) != 1 {
			return false
		}
		// Only the leading byte is served in legacy format; the rest of the
		// buffer keeps whatever the last modern reply left there.
		s.opMode[0] = text[0]
		s.legacy = true

	case frame.KindModeModern:
		if len(text) != frame.ModeChars {
			return false
		}
		copy(s.opMode[:], text)
		s.legacy = false

	case frame.KindOpData:
		if len(text) != frame.OpDataChars {
			return false
		}
		copy(s.opData[:], text)

	case frame.KindServiceData:
		if len(text) != frame.ServiceDataChars {
			return false
		}
		copy(s.serviceData[:], text)

	default:
		return false
	}

	s.seq++
	return true
}

// Apply stores a classification result.
func (s *Store) Apply(res frame.Result) bool {
	return s.Update(res.Kind, res.Payload)
}

// Snapshot returns a copy of the current state for serialization.
func (s *Store) Snapshot() Snapshot {
	mode := s.opMode[:]
	if s.legacy {
		mode = mode[:1]
	}
	return Snapshot{
		OpData:      string(s.opData[:]),
		OpMode:      string(mode),
		ServiceData: string(s.serviceData[:]),
		Legacy:      s.legacy,
		Seq:         s.seq,
	}
}

// fill copies src into dst, padding with spaces.
func fill(dst []byte, src string) {
	n := copy(dst, src)
	for i := n; i < len(dst); i++ {
		dst[i] = ' '
	}
}
