package status

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tamzrod/esplus-bridge/internal/frame"
)

var testDefaults = Defaults{
	OpMode:      "110D",
	OpData:      "066F069E0B3F0A5C0BB",
	ServiceData: strings.Repeat("0", frame.ServiceDataChars),
}

func TestNewStore_StartsAtDefaults(t *testing.T) {
	s := NewStore(testDefaults)

	snap := s.Snapshot()
	require.Equal(t, "110D", snap.OpMode)
	require.Equal(t, testDefaults.OpData, snap.OpData)
	require.Equal(t, testDefaults.ServiceData, snap.ServiceData)
	require.False(t, snap.Legacy)
	require.True(t, s.IsDefault())
}

func TestNewStore_PadsShortDefaults(t *testing.T) {
	s := NewStore(Defaults{OpMode: "5", Legacy: true})

	snap := s.Snapshot()
	require.Equal(t, "5", snap.OpMode)
	require.Equal(t, strings.Repeat(" ", frame.OpDataChars), snap.OpData)
	require.Len(t, snap.ServiceData, frame.ServiceDataChars)
}

func TestApply_ModernThenLegacy(t *testing.T) {
	s := NewStore(testDefaults)

	require.True(t, s.Apply(frame.Classify([]byte{0x02, '1', '2', '3', '4', 0x03})))
	require.Equal(t, "1234", s.Snapshot().OpMode)

	require.True(t, s.Apply(frame.Classify([]byte{0x02, '5', 0x03})))
	snap := s.Snapshot()
	require.Equal(t, "5", snap.OpMode)
	require.True(t, snap.Legacy)
}

func TestApply_Idempotent(t *testing.T) {
	s := NewStore(testDefaults)
	raw := append(append([]byte{0x02}, "ABCDEFGHIJKLMNOPQRS"...), 0x03)

	s.Apply(frame.Classify(raw))
	first := s.Snapshot()
	s.Apply(frame.Classify(raw))
	second := s.Snapshot()

	first.Seq, second.Seq = 0, 0
	require.Equal(t, first, second)
}

func TestApply_UnclassifiedLeavesStore(t *testing.T) {
	s := NewStore(testDefaults)
	before := s.Snapshot()

	require.False(t, s.Apply(frame.Classify([]byte{0x02, 'x', 'y', 0x03})))
	require.Equal(t, before, s.Snapshot())
}

func TestUpdate_WrongLengthRejected(t *testing.T) {
	s := NewStore(testDefaults)
	before := s.Snapshot()

	require.False(t, s.Update(frame.KindOpData, []byte("short")))
	require.Equal(t, before, s.Snapshot())
}

func TestReset_RestoresDefaultsExactly(t *testing.T) {
	s := NewStore(testDefaults)
	s.Apply(frame.Classify([]byte{0x02, '9', 0x03}))
	s.Apply(frame.Classify(append(append([]byte{0x02}, strings.Repeat("Z", 19)...), 0x03)))
	require.False(t, s.IsDefault())

	s.Reset()

	require.True(t, s.IsDefault())
	snap := s.Snapshot()
	require.Equal(t, "110D", snap.OpMode)
	require.False(t, snap.Legacy)
	require.Equal(t, testDefaults.OpData, snap.OpData)
}

func TestReset_SeqStableWhenAlreadyDefault(t *testing.T) {
	s := NewStore(testDefaults)
	seq := s.Snapshot().Seq

	s.Reset()
	s.Reset()

	require.Equal(t, seq, s.Snapshot().Seq)
}
