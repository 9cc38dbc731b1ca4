// Package subnet derives network, broadcast, host range and sample addresses
// from a CIDR string. Everything here is a pure function of its input.
package subnet

import (
	"math/big"
	"net/netip"
	"strconv"
	"strings"
)

// SampleSize bounds the number of addresses listed in a Report.
const SampleSize = 5

// Family names an address family.
type Family string

const (
	IPv4 Family = "ipv4"
	IPv6 Family = "ipv6"
)

// Report is the result of planning one CIDR block.
//
// Broadcast, UsableHosts, FirstUsable and LastUsable are only meaningful for
// IPv4; for IPv6 the addresses are the zero netip.Addr. Samples holds the
// first usable hosts for IPv4 and the first addresses of the block for IPv6.
type Report struct {
	Prefix         netip.Prefix
	Network        netip.Addr
	PrefixLength   int
	Netmask        netip.Addr
	TotalAddresses *big.Int
	Broadcast      netip.Addr
	UsableHosts    uint64
	FirstUsable    netip.Addr
	LastUsable     netip.Addr
	Samples        []netip.Addr
}

// Family returns the report's address family.
func (r *Report) Family() Family {
	if r.Network.Is4() {
		return IPv4
	}
	return IPv6
}

// HasBroadcast reports whether the block has a broadcast address.
func (r *Report) HasBroadcast() bool { return r.Broadcast.IsValid() }

// Plan parses cidr as <address>/<prefix-length> and computes its report.
// Host bits in the address are cleared rather than rejected, so 10.0.10.5/24
// plans 10.0.10.0/24. A bare address is planned as a single-host block.
func Plan(cidr string) (*Report, error) {
	prefix, err := parse(cidr)
	if err != nil {
		return nil, err
	}
	if prefix.Addr().Is4() {
		return planIPv4(prefix), nil
	}
	return planIPv6(prefix), nil
}

func parse(input string) (netip.Prefix, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return netip.Prefix{}, invalid(input, "empty input", nil)
	}

	addrText, bitsText, hasBits := strings.Cut(text, "/")
	addr, err := netip.ParseAddr(addrText)
	if err != nil {
		return netip.Prefix{}, invalid(input, "malformed address", err)
	}
	if addr.Zone() != "" {
		return netip.Prefix{}, invalid(input, "zoned addresses are not networks", nil)
	}

	bits := addr.BitLen()
	if hasBits {
		if bitsText == "" || strings.TrimLeft(bitsText, "0123456789") != "" {
			return netip.Prefix{}, invalid(input, "malformed prefix length", nil)
		}
		n, err := strconv.Atoi(bitsText)
		if err != nil || n > addr.BitLen() {
			return netip.Prefix{}, invalid(input, "prefix length must be 0-"+strconv.Itoa(addr.BitLen()), ErrPrefixRange)
		}
		bits = n
	}

	return netip.PrefixFrom(addr, bits).Masked(), nil
}

func planIPv4(p netip.Prefix) *Report {
	bits := p.Bits()
	mask := uint32(0)
	if bits > 0 {
		mask = ^uint32(0) << (32 - bits)
	}
	network := addrToUint32(p.Addr())
	broadcast := network | ^mask
	total := uint64(1) << (32 - bits)

	r := &Report{
		Prefix:         p,
		Network:        p.Addr(),
		PrefixLength:   bits,
		Netmask:        uint32ToAddr(mask),
		TotalAddresses: new(big.Int).SetUint64(total),
		Broadcast:      uint32ToAddr(broadcast),
	}

	// /31 is a point-to-point link and /32 a single host: neither reserves
	// network or broadcast addresses.
	switch {
	case bits <= 30:
		r.UsableHosts = total - 2
		r.FirstUsable = uint32ToAddr(network + 1)
		r.LastUsable = uint32ToAddr(broadcast - 1)
	case bits == 31:
		r.UsableHosts = 2
		r.FirstUsable = r.Network
		r.LastUsable = r.Broadcast
	default:
		r.UsableHosts = 1
		r.FirstUsable = r.Network
		r.LastUsable = r.Network
	}

	n := min(uint64(SampleSize), r.UsableHosts)
	r.Samples = enumerate(r.FirstUsable, int(n))
	return r
}

func planIPv6(p netip.Prefix) *Report {
	bits := p.Bits()
	total := new(big.Int).Lsh(big.NewInt(1), uint(128-bits))

	n := SampleSize
	if total.Cmp(big.NewInt(SampleSize)) < 0 {
		n = int(total.Int64())
	}

	return &Report{
		Prefix:         p,
		Network:        p.Addr(),
		PrefixLength:   bits,
		Netmask:        netmask(bits, 16),
		TotalAddresses: total,
		Samples:        enumerate(p.Addr(), n),
	}
}

// enumerate returns n consecutive addresses starting at start.
func enumerate(start netip.Addr, n int) []netip.Addr {
	out := make([]netip.Addr, 0, n)
	for a := start; len(out) < n && a.IsValid(); a = a.Next() {
		out = append(out, a)
	}
	return out
}

func netmask(bits, size int) netip.Addr {
	b := make([]byte, size)
	for i := range b {
		switch {
		case bits >= 8:
			b[i] = 0xff
			bits -= 8
		case bits > 0:
			b[i] = byte(0xff << (8 - bits))
			bits = 0
		}
	}
	a, _ := netip.AddrFromSlice(b)
	return a
}

func addrToUint32(a netip.Addr) uint32 {
	b := a.As4()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func uint32ToAddr(v uint32) netip.Addr {
	return netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}
