package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/esplus-bridge/internal/bridge"
	"github.com/tamzrod/esplus-bridge/internal/config"
	"github.com/tamzrod/esplus-bridge/internal/httpd"
	"github.com/tamzrod/esplus-bridge/internal/logging"
	"github.com/tamzrod/esplus-bridge/internal/metrics"
	"github.com/tamzrod/esplus-bridge/internal/poller"
	"github.com/tamzrod/esplus-bridge/internal/status"
	"github.com/tamzrod/esplus-bridge/internal/watchdog"
	"github.com/tamzrod/esplus-bridge/internal/writer"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: bridge <config.yaml>")
		os.Exit(2)
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config validation failed: %v\n", err)
		os.Exit(1)
	}
	config.Normalize(cfg)
	b := cfg.Bridge

	log, err := logging.New(b.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// State + metrics
	// --------------------

	store := status.NewStore(status.Defaults{
		OpMode:      b.Defaults.OpMode,
		Legacy:      b.Defaults.Legacy,
		OpData:      b.Defaults.OpData,
		ServiceData: b.Defaults.ServiceData,
	})

	reg := metrics.NewRegistry()
	m := metrics.NewBridge(reg)
	if b.Metrics.Listen != "" {
		srv := metrics.Serve(b.Metrics.Listen, reg, func(err error) {
			log.Error("metrics server stopped", zap.Error(err))
		})
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
		log.Info("metrics enabled", zap.String("listen", b.Metrics.Listen))
	}

	// --------------------
	// Serial poller
	// --------------------

	p, closePoller, err := poller.Build(b, store)
	if err != nil {
		log.Fatal("poller build failed", zap.String("device", b.Serial.Device), zap.Error(err))
	}
	defer closePoller()

	// --------------------
	// HTTP responder
	// --------------------

	ln, err := httpd.Listen(b.HTTP.Listen, time.Duration(b.HTTP.AcceptPollMs)*time.Millisecond)
	if err != nil {
		log.Fatal("listen failed", zap.Error(err))
	}
	defer ln.Close()

	resp, err := httpd.NewResponder(httpd.Config{
		ReadTimeout:     time.Duration(b.HTTP.ReadTimeoutMs) * time.Millisecond,
		MaxRequestBytes: b.HTTP.MaxRequestBytes,
	}, store)
	if err != nil {
		log.Fatal("responder build failed", zap.Error(err))
	}

	// --------------------
	// Optional collaborators
	// --------------------

	var mirror writer.Writer
	if b.Mirror.Enabled {
		w, closeMirror, err := writer.Build(b.Mirror)
		if err != nil {
			log.Fatal("mirror build failed", zap.String("endpoint", b.Mirror.Endpoint), zap.Error(err))
		}
		defer closeMirror()
		mirror = w
		log.Info("modbus mirror enabled",
			zap.String("endpoint", b.Mirror.Endpoint),
			zap.Uint8("unit_id", b.Mirror.UnitID),
			zap.Uint16("address", b.Mirror.Address))
	}

	// --------------------
	// Watchdog
	// --------------------

	// Armed last. log.Fatal skips deferred calls, so any fatal path after
	// OpenDevice must call disarm itself.
	var wd watchdog.Pulser = watchdog.Nop{}
	disarm := func() {}
	if b.Watchdog.Enabled {
		dev, err := watchdog.OpenDevice(b.Watchdog.Device)
		if err != nil {
			log.Fatal("watchdog open failed", zap.Error(err))
		}
		disarm = func() { _ = dev.Close() }
		wd = dev
		log.Info("watchdog armed", zap.String("device", b.Watchdog.Device))
	}
	defer disarm()

	// --------------------
	// Loop
	// --------------------

	loop, err := bridge.New(bridge.Deps{
		Poller:     p,
		Store:      store,
		Acceptor:   ln,
		Responder:  resp,
		Watchdog:   wd,
		Mirror:     mirror,
		Metrics:    m,
		Logger:     log,
		CrossCheck: b.Poll.CrossCheck,

		MirrorBackoff: time.Duration(b.Mirror.RetryBackoffMs) * time.Millisecond,
	})
	if err != nil {
		disarm()
		log.Fatal("bridge build failed", zap.Error(err))
	}

	log.Info("bridge started",
		zap.String("serial", b.Serial.Device),
		zap.String("listen", ln.Addr().String()),
		zap.Int("interval_ms", b.Poll.IntervalMs),
		zap.Int("stale_threshold", *b.Poll.StaleThreshold))

	_ = loop.Run(ctx)
}
