package inventory

import "sort"

// Tally maps a category value to the number of records carrying it.
type Tally map[string]int

// Bucket is one row of a Tally.
type Bucket struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// Buckets returns the tally sorted by ascending key.
func (t Tally) Buckets() []Bucket {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Bucket, len(keys))
	for i, k := range keys {
		out[i] = Bucket{Key: k, Count: t[k]}
	}
	return out
}

// Report holds three independent frequency tables over the collection.
type Report struct {
	Total      int   `json:"total" yaml:"total"`
	ByStatus   Tally `json:"by_status" yaml:"by_status"`
	ByLocation Tally `json:"by_location" yaml:"by_location"`
	ByType     Tally `json:"by_type" yaml:"by_type"`
}

// Report counts the collection by status, location and device type.
func (s *Store) Report() Report {
	r := Report{
		Total:      len(s.devices),
		ByStatus:   Tally{},
		ByLocation: Tally{},
		ByType:     Tally{},
	}
	for _, d := range s.devices {
		r.ByStatus[string(d.Status)]++
		r.ByLocation[d.Location]++
		r.ByType[string(d.DeviceType)]++
	}
	s.metrics.Operation("report")
	return r
}
