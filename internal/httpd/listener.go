package httpd

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// Listener hands out at most one waiting connection per call and never
// blocks longer than the accept poll.
type Listener struct {
	ln   *net.TCPListener
	poll time.Duration
}

// Listen opens a TCP listener on addr.
func Listen(addr string, poll time.Duration) (*Listener, error) {
	if poll <= 0 {
		return nil, errors.New("httpd: accept poll must be > 0")
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("httpd: listen %s: %w", addr, err)
	}
	tcp, ok := ln.(*net.TCPListener)
	if !ok {
		_ = ln.Close()
		return nil, fmt.Errorf("httpd: listen %s: not a TCP listener", addr)
	}
	return &Listener{ln: tcp, poll: poll}, nil
}

// AcceptPending returns the next waiting connection, or (nil, nil) when
// nobody connected within the poll window.
func (l *Listener) AcceptPending() (net.Conn, error) {
	if err := l.ln.SetDeadline(time.Now().Add(l.poll)); err != nil {
		return nil, fmt.Errorf("httpd: set accept deadline: %w", err)
	}
	conn, err := l.ln.Accept()
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil, nil
		}
		return nil, fmt.Errorf("httpd: accept: %w", err)
	}
	return conn, nil
}

// Addr returns the bound address.
func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

// Close stops listening.
func (l *Listener) Close() error { return l.ln.Close() }
