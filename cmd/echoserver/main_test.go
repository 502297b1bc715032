package main

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/go-fibernet/ioruntime"
	"github.com/joeycumines/go-fibernet/netaddr"
	"github.com/joeycumines/go-fibernet/runtimelog"
	"github.com/joeycumines/go-fibernet/tcpserver"
)

func TestHandleEcho_EchoesThenLogsOnClose(t *testing.T) {
	m, err := ioruntime.New(2, false, "echoserver-test")
	require.NoError(t, err)
	m.Start()
	t.Cleanup(func() {
		m.Stop()
		_ = m.Close()
	})

	srv := tcpserver.New(m, m)
	srv.Handle = handleEcho(runtimelog.Default())

	addr, err := netaddr.ParseIPv4("127.0.0.1", 0)
	require.NoError(t, err)
	require.NoError(t, srv.Bind(addr))
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Stop)

	bound := srv.Addrs()
	require.Len(t, bound, 1)

	conn, err := net.DialTimeout("tcp", bound[0].String(), time.Second)
	require.NoError(t, err)

	_, err = conn.Write([]byte("hello"))
	require.NoError(t, err)

	out := make([]byte, 5)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, err = conn.Read(out)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	require.NoError(t, conn.Close())
	time.Sleep(100 * time.Millisecond)
}

func TestTwoClients_BothEchoedIndependently(t *testing.T) {
	m, err := ioruntime.New(2, false, "echoserver-test2")
	require.NoError(t, err)
	m.Start()
	t.Cleanup(func() {
		m.Stop()
		_ = m.Close()
	})

	srv := tcpserver.New(m, m)
	srv.Handle = handleEcho(runtimelog.Default())

	addr, err := netaddr.ParseIPv4("127.0.0.1", 0)
	require.NoError(t, err)
	require.NoError(t, srv.Bind(addr))
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Stop)

	bound := srv.Addrs()
	require.Len(t, bound, 1)

	for i := 0; i < 2; i++ {
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
	}
}
