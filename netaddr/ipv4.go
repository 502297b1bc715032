package netaddr

import (
	"encoding/binary"
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

// IPv4Address is an IPv4 IPAddress, the Go analogue of IPv4Address.
type IPv4Address struct {
	addr [4]byte
	port uint16
}

// NewIPv4 constructs an IPv4Address from its 4-byte form and port.
func NewIPv4(addr [4]byte, port uint16) *IPv4Address {
	return &IPv4Address{addr: addr, port: port}
}

// ParseIPv4 parses a dotted-decimal address string, the Go analogue
// of IPv4Address::Create.
func ParseIPv4(address string, port uint16) (*IPv4Address, error) {
	ip := net.ParseIP(address)
	if ip == nil {
		return nil, fmt.Errorf("netaddr: invalid IPv4 address %q", address)
	}
	v4 := ip.To4()
	if v4 == nil {
		return nil, fmt.Errorf("netaddr: %q is not an IPv4 address", address)
	}
	var addr [4]byte
	copy(addr[:], v4)
	return NewIPv4(addr, port), nil
}

func (a *IPv4Address) Family() int { return unix.AF_INET }

func (a *IPv4Address) Sockaddr() unix.Sockaddr {
	return &unix.SockaddrInet4{Addr: a.addr, Port: int(a.port)}
}

func (a *IPv4Address) String() string {
	return fmt.Sprintf("%d.%d.%d.%d:%d", a.addr[0], a.addr[1], a.addr[2], a.addr[3], a.port)
}

func (a *IPv4Address) Port() uint16        { return a.port }
func (a *IPv4Address) SetPort(port uint16) { a.port = port }

func (a *IPv4Address) uint32() uint32 { return binary.BigEndian.Uint32(a.addr[:]) }

func fromUint32(v uint32) [4]byte {
	var out [4]byte
	binary.BigEndian.PutUint32(out[:], v)
	return out
}

// BroadcastAddress ORs in the host-portion mask for a prefixLen-bit
// subnet, the Go analogue of IPv4Address::broadcastAddress.
func (a *IPv4Address) BroadcastAddress(prefixLen uint32) (IPAddress, error) {
	if prefixLen > 32 {
		return nil, fmt.Errorf("netaddr: prefix length %d out of range for IPv4", prefixLen)
	}
	return NewIPv4(fromUint32(a.uint32()|createMask32(prefixLen)), a.port), nil
}

// NetworkAddress ANDs out the host-portion mask for a prefixLen-bit
// subnet, the Go analogue of IPv4Address::networkAddress.
func (a *IPv4Address) NetworkAddress(prefixLen uint32) (IPAddress, error) {
	if prefixLen > 32 {
		return nil, fmt.Errorf("netaddr: prefix length %d out of range for IPv4", prefixLen)
	}
	return NewIPv4(fromUint32(a.uint32()&^createMask32(prefixLen)), a.port), nil
}

// SubnetMask returns the prefixLen-bit netmask itself, the Go analogue
// of IPv4Address::subnetMask.
func (a *IPv4Address) SubnetMask(prefixLen uint32) (IPAddress, error) {
	if prefixLen > 32 {
		return nil, fmt.Errorf("netaddr: prefix length %d out of range for IPv4", prefixLen)
	}
	return NewIPv4(fromUint32(^createMask32(prefixLen)), 0), nil
}
