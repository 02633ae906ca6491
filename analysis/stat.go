package analysis

import "time"

// Stat records how much work one top-level search did. It is reporting only
// and never feeds back into the search.
type Stat struct {
	Nodes uint64
	Start time.Time
}

// NewStat starts a fresh recorder.
func NewStat() *Stat {
	return &Stat{Start: time.Now()}
}

// Visit counts one clone-and-apply.
func (s *Stat) Visit() {
	if s != nil {
		s.Nodes++
	}
}

// Elapsed returns the time since the recorder was created.
func (s *Stat) Elapsed() time.Duration {
	return time.Since(s.Start)
}

// NodesPerSecond returns the visit rate, or 0 before any time has passed.
func (s *Stat) NodesPerSecond() float64 {
	secs := s.Elapsed().Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.Nodes) / secs
}
