// Package netaddr is a network-address abstraction over
// golang.org/x/sys/unix.Sockaddr: one Address interface implemented by
// IPv4, IPv6, Unix-domain, and unknown-family addresses, plus IP-only
// operations (broadcast/network/subnet-mask derivation from a prefix
// length) on an IPAddress sub-interface.
//
// It mirrors an Address/IPAddress/IPv4Address/IPv6Address/UnixAddress/
// UnknownAddress class hierarchy, the mask-derivation helpers used by
// broadcast/network/subnet-mask computation, and a sockaddr-family
// dispatch for constructing the right concrete type.
package netaddr
