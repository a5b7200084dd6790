package poller

import (
	"errors"
	"fmt"
	"time"

	"github.com/tamzrod/esplus-bridge/internal/frame"
	"github.com/tamzrod/esplus-bridge/internal/status"
)

// Poller is a dumb, clock-driven requester.
// Requests are emitted by elapsed time only, never by acknowledgment;
// several may be outstanding at once without tracking.
type Poller struct {
	cfg   Config
	tr    Transport
	store *status.Store

	next     frame.RequestKind
	last     time.Time
	lastSent frame.RequestKind
	sentAny  bool
	stale    int

	scratch [frame.MaxFrame]byte
}

// New creates a poller with immutable config.
func New(cfg Config, tr Transport, store *status.Store) (*Poller, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if cfg.StaleThreshold < 0 {
		return nil, errors.New("poller: stale threshold must be >= 0")
	}
	if cfg.DrainLimit <= 0 {
		return nil, errors.New("poller: drain limit must be > 0")
	}
	if tr == nil {
		return nil, errors.New("poller: transport required")
	}
	if store == nil {
		return nil, errors.New("poller: store required")
	}
	return &Poller{cfg: cfg, tr: tr, store: store, next: frame.OperatingMode}, nil
}

// Tick emits the next request if more than Interval has elapsed since the
// last one. A clock that went backwards resets the reference to zero.
// ok is false when nothing was due.
func (p *Poller) Tick(now time.Time) (e Emission, ok bool) {
	if now.Before(p.last) {
		p.last = time.Time{}
	}
	if now.Sub(p.last) <= p.cfg.Interval {
		return Emission{}, false
	}

	kind := p.next
	req := frame.EncodeRequest(kind)
	_, err := p.tr.Write(req[:])

	p.lastSent = kind
	p.sentAny = true
	p.next = kind.Next()
	p.stale++
	p.last = now

	e = Emission{Kind: kind, StaleCount: p.stale}
	if err != nil {
		e.Err = fmt.Errorf("poller: write %s request: %w", kind, err)
	}
	return e, true
}

// Drain reads everything the transport currently has into buf.
// n is the total number of bytes drained; only the first len(buf) are kept,
// so n > len(buf) means the frame overflowed and must be treated as noise.
func (p *Poller) Drain(buf []byte) (n int, err error) {
	for i := 0; i < p.cfg.DrainLimit; i++ {
		// overflow bytes are counted, not kept
		dst := p.scratch[:]
		if n < len(buf) {
			dst = buf[n:]
		}
		k, rerr := p.tr.Read(dst)
		n += k
		if rerr != nil {
			return n, fmt.Errorf("poller: read: %w", rerr)
		}
		if k == 0 {
			return n, nil
		}
	}
	return n, nil
}

// OnFrameDecoded marks the data as fresh.
func (p *Poller) OnFrameDecoded() {
	p.stale = 0
}

// CheckStaleness resets the store to its defaults once more requests than
// the threshold went unanswered. The stale count itself is left alone.
// It reports whether the threshold is exceeded.
func (p *Poller) CheckStaleness() bool {
	if p.stale <= p.cfg.StaleThreshold {
		return false
	}
	p.store.Reset()
	return true
}

// StaleCount returns the number of requests since the last decode.
func (p *Poller) StaleCount() int { return p.stale }

// NextKind returns the kind the next Tick will request.
func (p *Poller) NextKind() frame.RequestKind { return p.next }

// LastSent returns the kind of the most recent request.
// ok is false before the first request.
func (p *Poller) LastSent() (kind frame.RequestKind, ok bool) {
	return p.lastSent, p.sentAny
}
