package subnet

import (
	"encoding/json"
	"net/netip"
	"strconv"
	"strings"
)

// Line is one labelled row of a rendered report.
type Line struct {
	Label string
	Value string
}

// Lines renders the report as labelled rows in display order.
func (r *Report) Lines() []Line {
	lines := []Line{
		{"Network", r.Network.String()},
		{"Prefix length", "/" + strconv.Itoa(r.PrefixLength)},
		{"Netmask", r.Netmask.String()},
		{"Total addrs", r.TotalAddresses.String()},
	}
	if r.Family() == IPv4 {
		return append(lines,
			Line{"Broadcast", r.Broadcast.String()},
			Line{"Usable hosts", strconv.FormatUint(r.UsableHosts, 10)},
			Line{"First host", r.FirstUsable.String()},
			Line{"Last host", r.LastUsable.String()},
			Line{"Sample hosts", joinAddrs(r.Samples)},
		)
	}
	return append(lines,
		Line{"Broadcast", "N/A (IPv6)"},
		Line{"Sample addrs", joinAddrs(r.Samples)},
	)
}

func joinAddrs(addrs []netip.Addr) string {
	parts := make([]string, len(addrs))
	for i, a := range addrs {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

// document is the machine-readable form of a Report. Address counts are
// decimal strings because IPv6 totals exceed 64 bits.
type document struct {
	CIDR            string   `json:"cidr" yaml:"cidr"`
	Family          Family   `json:"family" yaml:"family"`
	Network         string   `json:"network_address" yaml:"network_address"`
	PrefixLength    int      `json:"prefix_length" yaml:"prefix_length"`
	Netmask         string   `json:"netmask" yaml:"netmask"`
	TotalAddresses  string   `json:"total_addresses" yaml:"total_addresses"`
	Broadcast       *string  `json:"broadcast_address" yaml:"broadcast_address"`
	UsableHosts     *uint64  `json:"usable_hosts,omitempty" yaml:"usable_hosts,omitempty"`
	FirstUsable     string   `json:"first_usable,omitempty" yaml:"first_usable,omitempty"`
	LastUsable      string   `json:"last_usable,omitempty" yaml:"last_usable,omitempty"`
	SampleHosts     []string `json:"sample_hosts,omitempty" yaml:"sample_hosts,omitempty"`
	SampleAddresses []string `json:"sample_addresses,omitempty" yaml:"sample_addresses,omitempty"`
}

func (r *Report) document() document {
	doc := document{
		CIDR:           r.Prefix.String(),
		Family:         r.Family(),
		Network:        r.Network.String(),
		PrefixLength:   r.PrefixLength,
		Netmask:        r.Netmask.String(),
		TotalAddresses: r.TotalAddresses.String(),
	}
	samples := make([]string, len(r.Samples))
	for i, a := range r.Samples {
		samples[i] = a.String()
	}
	if r.Family() == IPv6 {
		doc.SampleAddresses = samples
		return doc
	}

	b := r.Broadcast.String()
	usable := r.UsableHosts
	doc.Broadcast = &b
	doc.UsableHosts = &usable
	doc.FirstUsable = r.FirstUsable.String()
	doc.LastUsable = r.LastUsable.String()
	doc.SampleHosts = samples
	return doc
}

// MarshalJSON encodes the report; broadcast_address is null for IPv6.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.document())
}

// MarshalYAML encodes the report with the same keys as MarshalJSON.
func (r *Report) MarshalYAML() (interface{}, error) {
	return r.document(), nil
}
