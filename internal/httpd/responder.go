package httpd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/tamzrod/esplus-bridge/internal/status"
)

// ErrRequestTooLarge is returned when no blank line shows up within
// MaxRequestBytes.
var ErrRequestTooLarge = errors.New("httpd: request exceeds limit without blank line")

// SnapshotSource is what the responder reads on every request.
type SnapshotSource interface {
	Snapshot() status.Snapshot
}

// Config bounds the request scan.
type Config struct {
	ReadTimeout     time.Duration // whole-connection deadline; 0 disables
	MaxRequestBytes int
}

// Responder answers every request with the same JSON snapshot.
// Method, path and headers are never inspected.
type Responder struct {
	cfg Config
	src SnapshotSource
}

func NewResponder(cfg Config, src SnapshotSource) (*Responder, error) {
	if cfg.MaxRequestBytes <= 0 {
		return nil, errors.New("httpd: max request bytes must be > 0")
	}
	if src == nil {
		return nil, errors.New("httpd: snapshot source required")
	}
	return &Responder{cfg: cfg, src: src}, nil
}

// Serve scans conn for the end of the request headers, writes the
// response and closes conn. The connection is always closed, also on error.
func (r *Responder) Serve(conn net.Conn) (err error) {
	defer func() {
		if cerr := conn.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("httpd: close: %w", cerr)
		}
	}()

	if r.cfg.ReadTimeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(r.cfg.ReadTimeout)); err != nil {
			return fmt.Errorf("httpd: set deadline: %w", err)
		}
	}

	if err := scanRequest(bufio.NewReader(conn), r.cfg.MaxRequestBytes); err != nil {
		return err
	}

	if _, err := conn.Write(Render(r.src.Snapshot())); err != nil {
		return fmt.Errorf("httpd: write: %w", err)
	}
	return nil
}

// scanRequest consumes bytes until an empty line: a '\n' on a line that so
// far held nothing but '\r'.
func scanRequest(br *bufio.Reader, limit int) error {
	blank := true
	for i := 0; i < limit; i++ {
		c, err := br.ReadByte()
		if err != nil {
			return fmt.Errorf("httpd: read: %w", err)
		}
		switch {
		case c == '\n' && blank:
			return nil
		case c == '\n':
			blank = true
		case c != '\r':
			blank = false
		}
	}
	return ErrRequestTooLarge
}

// Render builds the full response: status line, content type, blank line
// and a JSON object with keys opdata, opmode, servicedata in that order.
func Render(s status.Snapshot) []byte {
	var b bytes.Buffer
	b.Grow(64 + len(s.OpData) + len(s.OpMode) + len(s.ServiceData) + 64)

	b.WriteString("HTTP/1.1 200 OK\r\n")
	b.WriteString("Content-Type: application/json\r\n")
	b.WriteString("\r\n")

	b.WriteString(`{"opdata": `)
	writeJSONString(&b, s.OpData)
	b.WriteString(`, "opmode": `)
	writeJSONString(&b, s.OpMode)
	b.WriteString(`, "servicedata": `)
	writeJSONString(&b, s.ServiceData)
	b.WriteString("}\r\n")

	return b.Bytes()
}

// writeJSONString writes v as a quoted JSON string. Controller text is
// plain ASCII; quoting only matters for corrupted frames.
func writeJSONString(b *bytes.Buffer, v string) {
	q, err := json.Marshal(v)
	if err != nil {
		b.WriteString(`""`)
		return
	}
	b.Write(q)
}
