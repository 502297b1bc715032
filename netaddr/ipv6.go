package netaddr

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

// IPv6Address is an IPv6 IPAddress, the Go analogue of IPv6Address.
type IPv6Address struct {
	addr [16]byte
	port uint16
}

// NewIPv6 constructs an IPv6Address from its 16-byte form and port.
func NewIPv6(addr [16]byte, port uint16) *IPv6Address {
	return &IPv6Address{addr: addr, port: port}
}

// ParseIPv6 parses an IPv6 address string, the Go analogue of
// IPv6Address::Create.
func ParseIPv6(address string, port uint16) (*IPv6Address, error) {
	ip := net.ParseIP(address)
	if ip == nil {
		return nil, fmt.Errorf("netaddr: invalid IPv6 address %q", address)
	}
	v6 := ip.To16()
	if v6 == nil {
		return nil, fmt.Errorf("netaddr: %q is not an IPv6 address", address)
	}
	var addr [16]byte
	copy(addr[:], v6)
	return NewIPv6(addr, port), nil
}

func (a *IPv6Address) Family() int { return unix.AF_INET6 }

func (a *IPv6Address) Sockaddr() unix.Sockaddr {
	return &unix.SockaddrInet6{Addr: a.addr, Port: int(a.port)}
}

func (a *IPv6Address) String() string {
	return fmt.Sprintf("[%s]:%d", net.IP(a.addr[:]).String(), a.port)
}

func (a *IPv6Address) Port() uint16        { return a.port }
func (a *IPv6Address) SetPort(port uint16) { a.port = port }

// BroadcastAddress sets the host-portion bits of the byte straddling
// prefixLen, and every whole byte after it, to all-ones, the Go
// analogue of IPv6Address::broadcastAddress.
func (a *IPv6Address) BroadcastAddress(prefixLen uint32) (IPAddress, error) {
	if prefixLen > 128 {
		return nil, fmt.Errorf("netaddr: prefix length %d out of range for IPv6", prefixLen)
	}
	out := a.addr
	if prefixLen < 128 {
		out[prefixLen/8] |= createMask8(prefixLen % 8)
	}
	for i := prefixLen/8 + 1; i < 16; i++ {
		out[i] = 0xff
	}
	return NewIPv6(out, a.port), nil
}

// NetworkAddress clears the host-portion bits of the byte straddling
// prefixLen, and every whole byte after it, the Go analogue of
// IPv6Address::networkAddress.
func (a *IPv6Address) NetworkAddress(prefixLen uint32) (IPAddress, error) {
	if prefixLen > 128 {
		return nil, fmt.Errorf("netaddr: prefix length %d out of range for IPv6", prefixLen)
	}
	out := a.addr
	if prefixLen < 128 {
		out[prefixLen/8] &= ^createMask8(prefixLen % 8)
	}
	for i := prefixLen/8 + 1; i < 16; i++ {
		out[i] = 0x00
	}
	return NewIPv6(out, a.port), nil
}

// SubnetMask returns the prefixLen-bit netmask itself, the Go analogue
// of IPv6Address::subnetMask.
func (a *IPv6Address) SubnetMask(prefixLen uint32) (IPAddress, error) {
	if prefixLen > 128 {
		return nil, fmt.Errorf("netaddr: prefix length %d out of range for IPv6", prefixLen)
	}
	var out [16]byte
	for i := uint32(0); i < prefixLen/8 && i < 16; i++ {
		out[i] = 0xff
	}
	if prefixLen < 128 {
		out[prefixLen/8] = ^createMask8(prefixLen % 8)
	}
	return NewIPv6(out, 0), nil
}
