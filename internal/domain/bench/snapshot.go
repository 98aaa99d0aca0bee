package bench

import "time"

// Key identifies one benchmark history.
type Key struct {
	Platform string `json:"platform"`
	Bench    string `json:"bench"`
}

// Snapshot groups histories by platform and benchmark name. It is built once
// by a loader and then only read.
type Snapshot struct {
	RepoURL    string
	LastUpdate time.Time

	series map[Key]DataSet
	order  []Key
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{series: make(map[Key]DataSet)}
}

// Add appends e to the history of (platform, benchName). Keys keep the order
// in which they were first added.
func (s *Snapshot) Add(platform, benchName string, e Entry) {
	k := Key{Platform: platform, Bench: benchName}
	ds, ok := s.series[k]
	if !ok {
		s.order = append(s.order, k)
	}
	s.series[k] = append(ds, e)
}

// Dataset returns the history of (platform, benchName).
func (s *Snapshot) Dataset(platform, benchName string) (DataSet, bool) {
	if s == nil {
		return nil, false
	}
	ds, ok := s.series[Key{Platform: platform, Bench: benchName}]
	return ds, ok
}

// Keys returns every history key in insertion order.
func (s *Snapshot) Keys() []Key {
	if s == nil {
		return nil
	}
	out := make([]Key, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of histories.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Points returns the total number of entries across all histories.
func (s *Snapshot) Points() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, ds := range s.series {
		n += len(ds)
	}
	return n
}
