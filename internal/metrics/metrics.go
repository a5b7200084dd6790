package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry creates a dedicated registry with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler returns the Prometheus HTTP handler for reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// Serve exposes reg on addr/metrics in a background goroutine.
// Listen errors are reported through onErr.
func Serve(addr string, reg *prometheus.Registry, onErr func(error)) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(reg))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) && onErr != nil {
			onErr(err)
		}
	}()
	return srv
}

// Bridge holds the bridge's own counters and gauges.
type Bridge struct {
	RequestsTotal      *prometheus.CounterVec // labels: kind
	FramesTotal        *prometheus.CounterVec // labels: kind (incl. unclassified, mismatch)
	StaleResetsTotal   prometheus.Counter
	StaleCount         prometheus.Gauge
	SerialErrorsTotal  *prometheus.CounterVec // labels: op=read|write
	HTTPResponsesTotal *prometheus.CounterVec // labels: result=ok|error
	MirrorWritesTotal  *prometheus.CounterVec // labels: result=ok|error
	WatchdogErrors     prometheus.Counter
}

// NewBridge registers and returns the bridge metrics.
func NewBridge(reg prometheus.Registerer) *Bridge {
	m := &Bridge{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "esplus_requests_total",
			Help: "Requests written to the controller.",
		}, []string{"kind"}),
		FramesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "esplus_frames_total",
			Help: "Frames drained from the controller by classification.",
		}, []string{"kind"}),
		StaleResetsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "esplus_stale_resets_total",
			Help: "Transitions into the stale state (state reset to defaults).",
		}),
		StaleCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "esplus_stale_count",
			Help: "Requests emitted since the last successful decode.",
		}),
		SerialErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "esplus_serial_errors_total",
			Help: "Serial transport errors.",
		}, []string{"op"}),
		HTTPResponsesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "esplus_http_responses_total",
			Help: "Network connections serviced.",
		}, []string{"result"}),
		MirrorWritesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "esplus_mirror_writes_total",
			Help: "Snapshot writes to the Modbus mirror.",
		}, []string{"result"}),
		WatchdogErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "esplus_watchdog_errors_total",
			Help: "Failed watchdog pulses.",
		}),
	}
	reg.MustRegister(
		m.RequestsTotal,
		m.FramesTotal,
		m.StaleResetsTotal,
		m.StaleCount,
		m.SerialErrorsTotal,
		m.HTTPResponsesTotal,
		m.MirrorWritesTotal,
		m.WatchdogErrors,
	)
	return m
}

// Result maps an error to the "result" label value.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
