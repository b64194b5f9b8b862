package endpoint

import (
	"hash/crc32"
	"sort"
	"strconv"
)

// ConsistentHashSelector maps a stable key (e.g. a target object's Name
// header, or a Target UUID) to the same candidate address across
// reconnects, giving a client that repeatedly exchanges with "the same
// logical object" session affinity to one physical address.
//
// Unlike Selector.Pick, this takes a key rather than a candidate list —
// candidates are added once up front via Add, then Pick is called
// per-exchange with whatever key identifies the logical target.
type ConsistentHashSelector struct {
	replicas int
	ring     []uint32
	nodes    map[uint32]*Candidate
}

// NewConsistentHashSelector creates a hash ring with 100 virtual nodes
// per candidate, enough for statistically even distribution across a
// handful of real addresses.
func NewConsistentHashSelector() *ConsistentHashSelector {
	return &ConsistentHashSelector{
		replicas: 100,
		nodes:    make(map[uint32]*Candidate),
	}
}

// Add places a candidate onto the hash ring.
func (s *ConsistentHashSelector) Add(c *Candidate) {
	for i := 0; i < s.replicas; i++ {
		key := c.Addr + "#" + strconv.Itoa(i)
		hash := crc32.ChecksumIEEE([]byte(key))
		s.ring = append(s.ring, hash)
		s.nodes[hash] = c
	}
	sort.Slice(s.ring, func(i, j int) bool { return s.ring[i] < s.ring[j] })
}

// Pick returns the candidate responsible for key, wrapping around the
// ring if key's hash exceeds every node's.
func (s *ConsistentHashSelector) Pick(key string) (*Candidate, error) {
	if len(s.ring) == 0 {
		return nil, errNoCandidates
	}
	hash := crc32.ChecksumIEEE([]byte(key))
	idx := sort.Search(len(s.ring), func(i int) bool { return s.ring[i] >= hash })
	if idx == len(s.ring) {
		idx = 0
	}
	return s.nodes[s.ring[idx]], nil
}

func (s *ConsistentHashSelector) Name() string {
	return "ConsistentHash"
}
