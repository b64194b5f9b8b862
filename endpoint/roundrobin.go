package endpoint

import "sync/atomic"

// RoundRobinSelector cycles through known candidates in order. Useful
// for a simple failover retry loop: try the next address each time the
// previous one failed to connect.
type RoundRobinSelector struct {
	counter int64 // atomic, incremented on each Pick()
}

func (s *RoundRobinSelector) Pick(candidates []Candidate) (*Candidate, error) {
	if len(candidates) == 0 {
		return nil, errNoCandidates
	}
	index := atomic.AddInt64(&s.counter, 1) % int64(len(candidates))
	return &candidates[index], nil
}

func (s *RoundRobinSelector) Name() string {
	return "RoundRobin"
}
