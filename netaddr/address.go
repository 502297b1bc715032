package netaddr

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Address is a network address, the Go analogue of the original's
// Address base class: something that knows its protocol family and
// can produce the unix.Sockaddr a syscall needs.
type Address interface {
	// Family returns the address family (unix.AF_INET, AF_INET6,
	// AF_UNIX, ...).
	Family() int
	// Sockaddr returns the unix.Sockaddr form, for bind/connect/accept.
	Sockaddr() unix.Sockaddr
	// String returns a human-readable form.
	String() string
}

// IPAddress is an Address that additionally carries a port and
// supports CIDR-style derivation, the Go analogue of the original's
// IPAddress class.
type IPAddress interface {
	Address
	Port() uint16
	SetPort(port uint16)
	// BroadcastAddress returns the broadcast address of the subnet
	// prefixLen bits wide that this address belongs to.
	BroadcastAddress(prefixLen uint32) (IPAddress, error)
	// NetworkAddress returns the network (base) address of the subnet
	// prefixLen bits wide that this address belongs to.
	NetworkAddress(prefixLen uint32) (IPAddress, error)
	// SubnetMask returns the subnet mask itself, prefixLen bits wide.
	SubnetMask(prefixLen uint32) (IPAddress, error)
}

// FromSockaddr converts a unix.Sockaddr (as returned by
// unix.Getsockname/Getpeername/Accept4) into an Address, the Go
// analogue of Address::Create. Unrecognized concrete types are
// wrapped as an UnknownAddress rather than erroring, matching the
// original falling back to a raw sockaddr copy.
func FromSockaddr(sa unix.Sockaddr) (Address, error) {
	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		return NewIPv4(v.Addr, uint16(v.Port)), nil
	case *unix.SockaddrInet6:
		return NewIPv6(v.Addr, uint16(v.Port)), nil
	case *unix.SockaddrUnix:
		return NewUnix(v.Name), nil
	case nil:
		return nil, fmt.Errorf("netaddr: nil sockaddr")
	default:
		return NewUnknown(sa), nil
	}
}

// createMask32 returns the host-portion mask (the low 32-prefixLen
// bits set) for an IPv4 prefix length, the Go analogue of
// CreateMask<uint32_t>(prefix_len).
func createMask32(prefixLen uint32) uint32 {
	if prefixLen == 0 {
		return 0xffffffff
	}
	if prefixLen >= 32 {
		return 0
	}
	return (uint32(1) << (32 - prefixLen)) - 1
}

// createMask8 returns the host-portion mask within a single IPv6
// address byte, given that byte's prefix-bit count (0-8), the Go
// analogue of CreateMask<uint8_t>(prefix_len % 8).
func createMask8(bits uint32) uint8 {
	if bits == 0 {
		return 0xff
	}
	if bits >= 8 {
		return 0
	}
	return uint8((1 << (8 - bits)) - 1)
}
