// Package endpoint helps a client pick one address to dial when it knows
// of several candidates for the same logical OBEX peer — e.g. a cached
// RFCOMM channel and a TCP fallback, or multiple previously-discovered
// Bluetooth SDP records for the same device. It has no role in the wire
// protocol; it only decides which address the synchronous adapter dials
// before client.Client.Connect is called.
package endpoint

import "fmt"

// Candidate is one known address for a peer, with a relative priority
// used by WeightedRandomSelector (higher priority, more likely to be
// tried).
type Candidate struct {
	Addr     string
	Priority int
}

// Selector picks one candidate from the available list. Called before
// every connection attempt; implementations must be goroutine-safe.
type Selector interface {
	Pick(candidates []Candidate) (*Candidate, error)
	Name() string
}

var errNoCandidates = fmt.Errorf("endpoint: no candidates available")
