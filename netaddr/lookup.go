package netaddr

import (
	"context"
	"fmt"
	"net"
)

// Lookup resolves host (a hostname, or a literal IPv4/IPv6 address)
// into every Address reachable under it, the Go analogue of
// Address::Lookup. Unlike the original, which shells out through
// getaddrinfo directly, this uses net.DefaultResolver so callers can
// bound it with a context.
//
// There is no pack dependency offering DNS resolution or interface
// enumeration, so this function and LookupAny/InterfaceAddresses are
// built directly on net's resolver rather than a third-party client.
func Lookup(ctx context.Context, host string, port uint16) ([]Address, error) {
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip", host)
	if err != nil {
		return nil, fmt.Errorf("netaddr: lookup %q: %w", host, err)
	}
	out := make([]Address, 0, len(ips))
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			var addr [4]byte
			copy(addr[:], v4)
			out = append(out, NewIPv4(addr, port))
			continue
		}
		var addr [16]byte
		copy(addr[:], ip.To16())
		out = append(out, NewIPv6(addr, port))
	}
	return out, nil
}

// LookupAny resolves host and returns the first Address found, the Go
// analogue of Address::LookupAny.
func LookupAny(ctx context.Context, host string, port uint16) (Address, error) {
	addrs, err := Lookup(ctx, host, port)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("netaddr: no addresses found for %q", host)
	}
	return addrs[0], nil
}

// LookupAnyIPAddress resolves host and returns the first IPAddress
// found, the Go analogue of Address::LookupAnyIPAddress.
func LookupAnyIPAddress(ctx context.Context, host string, port uint16) (IPAddress, error) {
	addrs, err := Lookup(ctx, host, port)
	if err != nil {
		return nil, err
	}
	for _, a := range addrs {
		if ip, ok := a.(IPAddress); ok {
			return ip, nil
		}
	}
	return nil, fmt.Errorf("netaddr: no IP addresses found for %q", host)
}

// InterfaceAddresses returns every IPAddress bound to a local network
// interface, the Go analogue of GetInterFaceAddresses.
func InterfaceAddresses() ([]IPAddress, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("netaddr: list interfaces: %w", err)
	}
	var out []IPAddress
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ipNet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			if v4 := ipNet.IP.To4(); v4 != nil {
				var addr [4]byte
				copy(addr[:], v4)
				out = append(out, NewIPv4(addr, 0))
				continue
			}
			v6 := ipNet.IP.To16()
			if v6 == nil {
				continue
			}
			var addr [16]byte
			copy(addr[:], v6)
			out = append(out, NewIPv6(addr, 0))
		}
	}
	return out, nil
}
