package httpd

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAcceptPending_NobodyWaiting(t *testing.T) {
	l, err := Listen("127.0.0.1:0", 20*time.Millisecond)
	require.NoError(t, err)
	defer l.Close()

	start := time.Now()
	conn, err := l.AcceptPending()
	require.NoError(t, err)
	require.Nil(t, conn)
	require.Less(t, time.Since(start), time.Second)
}

func TestAcceptPending_OneConnection(t *testing.T) {
	l, err := Listen("127.0.0.1:0", 200*time.Millisecond)
	require.NoError(t, err)
	defer l.Close()

	c, err := net.Dial("tcp", l.Addr().String())
	require.NoError(t, err)
	defer c.Close()

	conn, err := l.AcceptPending()
	require.NoError(t, err)
	require.NotNil(t, conn)
	_ = conn.Close()
}

func TestListen_BadPoll(t *testing.T) {
	_, err := Listen("127.0.0.1:0", 0)
	require.Error(t, err)
}
