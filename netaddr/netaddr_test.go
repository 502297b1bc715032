package netaddr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestIPv4_BroadcastNetworkSubnetMask(t *testing.T) {
	addr, err := ParseIPv4("192.168.1.200", 80)
	require.NoError(t, err)

	bcast, err := addr.BroadcastAddress(24)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.255:80", bcast.String())

	network, err := addr.NetworkAddress(24)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.0:80", network.String())

	mask, err := addr.SubnetMask(24)
	require.NoError(t, err)
	assert.Equal(t, "255.255.255.0:0", mask.String())
}

func TestIPv4_PrefixZeroAndThirtyTwo(t *testing.T) {
	addr, err := ParseIPv4("10.0.0.1", 0)
	require.NoError(t, err)

	bcast, err := addr.BroadcastAddress(0)
	require.NoError(t, err)
	assert.Equal(t, "255.255.255.255:0", bcast.String())

	network, err := addr.NetworkAddress(32)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:0", network.String())

	mask, err := addr.SubnetMask(32)
	require.NoError(t, err)
	assert.Equal(t, "255.255.255.255:0", mask.String())

	_, err = addr.SubnetMask(33)
	assert.Error(t, err)
}

func TestIPv6_BroadcastNetworkSubnetMask(t *testing.T) {
	addr, err := ParseIPv6("2001:db8::1", 443)
	require.NoError(t, err)

	network, err := addr.NetworkAddress(64)
	require.NoError(t, err)
	assert.Equal(t, "[2001:db8::]:443", network.String())

	bcast, err := addr.BroadcastAddress(64)
	require.NoError(t, err)
	assert.Equal(t, "[2001:db8::ffff:ffff:ffff:ffff]:443", bcast.String())
}

func TestIPv6_PrefixOneTwentyEightDoesNotPanic(t *testing.T) {
	addr, err := ParseIPv6("::1", 0)
	require.NoError(t, err)

	bcast, err := addr.BroadcastAddress(128)
	require.NoError(t, err)
	assert.Equal(t, addr.String(), bcast.String())

	network, err := addr.NetworkAddress(128)
	require.NoError(t, err)
	assert.Equal(t, addr.String(), network.String())

	mask, err := addr.SubnetMask(128)
	require.NoError(t, err)
	assert.Equal(t, "[ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff]:0", mask.String())

	_, err = addr.SubnetMask(129)
	assert.Error(t, err)
}

func TestIPv6_PrefixZero(t *testing.T) {
	addr, err := ParseIPv6("fe80::1", 0)
	require.NoError(t, err)

	mask, err := addr.SubnetMask(0)
	require.NoError(t, err)
	assert.Equal(t, "[::]:0", mask.String())

	bcast, err := addr.BroadcastAddress(0)
	require.NoError(t, err)
	assert.Equal(t, "[ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff]:0", bcast.String())
}

func TestFromSockaddr_DispatchesByConcreteType(t *testing.T) {
	v4, err := FromSockaddr(&unix.SockaddrInet4{Addr: [4]byte{127, 0, 0, 1}, Port: 8080})
	require.NoError(t, err)
	assert.IsType(t, &IPv4Address{}, v4)

	v6, err := FromSockaddr(&unix.SockaddrInet6{Addr: [16]byte{0: 1}, Port: 8080})
	require.NoError(t, err)
	assert.IsType(t, &IPv6Address{}, v6)

	unixAddr, err := FromSockaddr(&unix.SockaddrUnix{Name: "/tmp/test.sock"})
	require.NoError(t, err)
	assert.IsType(t, &UnixAddress{}, unixAddr)
	assert.Equal(t, "/tmp/test.sock", unixAddr.(*UnixAddress).Path())

	_, err = FromSockaddr(nil)
	assert.Error(t, err)
}

func TestUnixAddress_RoundTripsThroughSockaddr(t *testing.T) {
	addr := NewUnix("/tmp/fibernet.sock")
	assert.Equal(t, unix.AF_UNIX, addr.Family())
	sa, ok := addr.Sockaddr().(*unix.SockaddrUnix)
	require.True(t, ok)
	assert.Equal(t, "/tmp/fibernet.sock", sa.Name)
}
