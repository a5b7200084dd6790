package bridge

import (
	"context"
	"errors"
	"net"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tamzrod/esplus-bridge/internal/frame"
	"github.com/tamzrod/esplus-bridge/internal/httpd"
	"github.com/tamzrod/esplus-bridge/internal/metrics"
	"github.com/tamzrod/esplus-bridge/internal/poller"
	"github.com/tamzrod/esplus-bridge/internal/status"
	"github.com/tamzrod/esplus-bridge/internal/watchdog"
	"github.com/tamzrod/esplus-bridge/internal/writer"
)

// Acceptor yields at most one pending connection without blocking long.
type Acceptor interface {
	AcceptPending() (net.Conn, error)
}

// Deps are the collaborators of one bridge loop.
// Mirror and Watchdog are optional.
type Deps struct {
	Poller    *poller.Poller
	Store     *status.Store
	Acceptor  Acceptor
	Responder *httpd.Responder
	Watchdog  watchdog.Pulser
	Mirror    writer.Writer
	Metrics   *metrics.Bridge
	Logger    *zap.Logger

	// CrossCheck drops frames whose kind does not match the last request.
	CrossCheck bool

	// MirrorBackoff is how long the mirror is skipped after a failed write.
	// Zero means DefaultMirrorBackoff.
	MirrorBackoff time.Duration
}

// DefaultMirrorBackoff is the pause after a failed mirror write.
const DefaultMirrorBackoff = 5 * time.Second

// Loop is the single cooperative execution loop:
// pulse → tick → drain → decode → staleness → serve one connection → mirror.
// Only the loop goroutine touches the store.
type Loop struct {
	d   Deps
	log *zap.Logger
	now func() time.Time

	buf   [frame.MaxFrame]byte
	noise *rate.Limiter

	decoded bool
	stale   bool

	mirrored       bool
	mirroredSeq    uint64
	mirroredHealth status.Health
	mirrorHold     time.Time // no attempts before this instant
}

// New checks the required collaborators.
func New(d Deps) (*Loop, error) {
	if d.Poller == nil || d.Store == nil {
		return nil, errors.New("bridge: poller and store required")
	}
	if d.Acceptor == nil || d.Responder == nil {
		return nil, errors.New("bridge: acceptor and responder required")
	}
	if d.Metrics == nil {
		return nil, errors.New("bridge: metrics required")
	}
	if d.Watchdog == nil {
		d.Watchdog = watchdog.Nop{}
	}
	if d.MirrorBackoff <= 0 {
		d.MirrorBackoff = DefaultMirrorBackoff
	}
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		d:     d,
		log:   log,
		now:   time.Now,
		noise: rate.NewLimiter(rate.Every(time.Second), 1),
	}, nil
}

// Run iterates until ctx is done. Pacing comes from the serial read
// timeout and the accept poll; there is no extra sleep.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("bridge loop started")
	for {
		select {
		case <-ctx.Done():
			l.log.Info("bridge loop stopped")
			return nil
		default:
		}
		l.Iterate()
	}
}

// Iterate runs exactly one pass of the loop.
func (l *Loop) Iterate() {
	l.pulse()

	l.poll()
	l.receive()
	l.checkStaleness()

	l.serveOne()

	l.mirror()
}

func (l *Loop) pulse() {
	if err := l.d.Watchdog.Pulse(); err != nil {
		l.d.Metrics.WatchdogErrors.Inc()
		l.log.Error("watchdog pulse failed", zap.Error(err))
	}
}

func (l *Loop) poll() {
	e, ok := l.d.Poller.Tick(l.now())
	if !ok {
		return
	}
	l.d.Metrics.RequestsTotal.WithLabelValues(e.Kind.String()).Inc()
	l.d.Metrics.StaleCount.Set(float64(e.StaleCount))
	if e.Err != nil {
		l.d.Metrics.SerialErrorsTotal.WithLabelValues("write").Inc()
		l.log.Warn("request write failed", zap.Stringer("kind", e.Kind), zap.Error(e.Err))
		return
	}
	l.log.Debug("request sent", zap.Stringer("kind", e.Kind), zap.Int("stale", e.StaleCount))
}

func (l *Loop) receive() {
	n, err := l.d.Poller.Drain(l.buf[:])
	if err != nil {
		l.d.Metrics.SerialErrorsTotal.WithLabelValues("read").Inc()
		l.log.Warn("serial read failed", zap.Int("len", n), zap.Error(err))
	}
	if n == 0 {
		return
	}

	var res frame.Result
	if n <= len(l.buf) {
		res = frame.Classify(l.buf[:n])
	}

	if !res.Classified() {
		l.dropNoise("unclassified", n)
		return
	}

	if l.d.CrossCheck {
		sent, ok := l.d.Poller.LastSent()
		if !ok || !res.Matches(sent) {
			l.dropNoise("mismatch", n)
			return
		}
	}

	l.d.Store.Apply(res)
	l.d.Poller.OnFrameDecoded()
	l.decoded = true
	l.d.Metrics.FramesTotal.WithLabelValues(res.Kind.String()).Inc()
	l.d.Metrics.StaleCount.Set(0)
	l.log.Debug("frame decoded", zap.Stringer("kind", res.Kind), zap.Int("len", n))
}

func (l *Loop) dropNoise(reason string, n int) {
	l.d.Metrics.FramesTotal.WithLabelValues(reason).Inc()
	if l.noise.Allow() {
		l.log.Debug("frame dropped", zap.String("reason", reason), zap.Int("len", n))
	}
}

func (l *Loop) checkStaleness() {
	stale := l.d.Poller.CheckStaleness()
	if stale && !l.stale {
		l.d.Metrics.StaleResetsTotal.Inc()
		l.log.Warn("controller silent, state reset to defaults",
			zap.Int("stale", l.d.Poller.StaleCount()))
	}
	if !stale && l.stale {
		l.log.Info("controller data fresh again")
	}
	l.stale = stale
}

func (l *Loop) serveOne() {
	conn, err := l.d.Acceptor.AcceptPending()
	if err != nil {
		l.log.Warn("accept failed", zap.Error(err))
		return
	}
	if conn == nil {
		return
	}

	remote := conn.RemoteAddr().String()

	l.pulse()
	err = l.d.Responder.Serve(conn)
	l.pulse()

	l.d.Metrics.HTTPResponsesTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		l.log.Debug("request not served", zap.String("remote", remote), zap.Error(err))
		return
	}
	l.log.Debug("snapshot served", zap.String("remote", remote))
}

func (l *Loop) mirror() {
	if l.d.Mirror == nil {
		return
	}
	snap := l.d.Store.Snapshot()
	h := writer.HealthFor(l.decoded, l.stale, l.d.Poller.StaleCount())
	if l.mirrored && snap.Seq == l.mirroredSeq && h == l.mirroredHealth {
		return
	}
	now := l.now()
	if now.Before(l.mirrorHold) {
		return
	}

	// The write may block up to the mirror timeout per request.
	l.pulse()
	err := l.d.Mirror.Write(snap, h)
	l.pulse()

	l.d.Metrics.MirrorWritesTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		l.mirrorHold = now.Add(l.d.MirrorBackoff)
		l.log.Warn("mirror write failed",
			zap.Duration("retry_in", l.d.MirrorBackoff), zap.Error(err))
		return
	}
	l.mirrored = true
	l.mirroredSeq = snap.Seq
	l.mirroredHealth = h
}
