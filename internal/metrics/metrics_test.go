package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewBridge_RegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBridge(reg)

	m.FramesTotal.WithLabelValues("opdata").Inc()
	m.FramesTotal.WithLabelValues("opdata").Inc()
	m.StaleCount.Set(4)

	require.Equal(t, 2.0, testutil.ToFloat64(m.FramesTotal.WithLabelValues("opdata")))
	require.Equal(t, 4.0, testutil.ToFloat64(m.StaleCount))

	// double registration must panic
	require.Panics(t, func() { NewBridge(reg) })
}

func TestResult(t *testing.T) {
	require.Equal(t, "ok", Result(nil))
	require.Equal(t, "error", Result(errors.New("x")))
}
