package tcpserver

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/go-fibernet/ioruntime"
	"github.com/joeycumines/go-fibernet/netaddr"
)

func newTestManager(t *testing.T) *ioruntime.Manager {
	t.Helper()
	m, err := ioruntime.New(2, false, "test")
	require.NoError(t, err)
	m.Start()
	t.Cleanup(func() {
		m.Stop()
		_ = m.Close()
	})
	return m
}

func TestServer_AcceptsAndEchoesOneConnection(t *testing.T) {
	m := newTestManager(t)
	srv := New(m, m)

	addr, err := netaddr.ParseIPv4("127.0.0.1", 0)
	require.NoError(t, err)
	require.NoError(t, srv.Bind(addr))

	var gotBody []byte
	done := make(chan struct{})
	srv.Handle = func(c *Conn) {
		buf := make([]byte, 5)
		n, err := c.Read(buf)
		if err == nil {
			gotBody = append([]byte(nil), buf[:n]...)
			_, _ = c.Write(buf[:n])
		}
		close(done)
	}
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Stop)

	bound := srv.Addrs()
	require.Len(t, bound, 1)

	conn, err := net.DialTimeout("tcp", bound[0].String(), time.Second)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("hello"))
	require.NoError(t, err)

	out := make([]byte, 5)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, err = conn.Read(out)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never ran")
	}
	assert.Equal(t, "hello", string(gotBody))
}

func TestServer_BindAllRollsBackOnPartialFailure(t *testing.T) {
	m := newTestManager(t)
	srv := New(m, m)

	good, err := netaddr.ParseIPv4("127.0.0.1", 0)
	require.NoError(t, err)
	// a TEST-NET-2 address (RFC 5737) is never assigned to a local
	// interface, so bind fails with EADDRNOTAVAIL regardless of privilege.
	bad, err := netaddr.ParseIPv4("198.51.100.1", 0)
	require.NoError(t, err)

	fails, err := srv.BindAll([]netaddr.Address{good, bad})
	assert.Error(t, err)
	assert.Len(t, fails, 1)
	assert.Empty(t, srv.Addrs())
}

func TestServer_StopPreventsFurtherAccepts(t *testing.T) {
	m := newTestManager(t)
	srv := New(m, m)
	addr, err := netaddr.ParseIPv4("127.0.0.1", 0)
	require.NoError(t, err)
	require.NoError(t, srv.Bind(addr))
	srv.Handle = func(c *Conn) { c.Close() }
	require.NoError(t, srv.Start())

	srv.Stop()
	assert.True(t, srv.IsStop())
}
