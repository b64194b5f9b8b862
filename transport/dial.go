package transport

import (
	"fmt"
	"net"
	"time"

	"obex/endpoint"
)

// Dial asks sel to pick one of candidates and opens a TCP connection to
// it, retrying the remaining candidates in the order sel hands them back
// if the dial fails. It has no opinion on RFCOMM or other transports —
// callers needing those can bypass Dial and hand their own net.Conn (or
// TransportHandle) straight to DriveClient.
func Dial(sel endpoint.Selector, candidates []endpoint.Candidate, timeout time.Duration) (net.Conn, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("transport: no candidates to dial")
	}

	remaining := append([]endpoint.Candidate(nil), candidates...)
	var lastErr error
	for len(remaining) > 0 {
		pick, err := sel.Pick(remaining)
		if err != nil {
			return nil, fmt.Errorf("transport: selecting candidate: %w", err)
		}

		conn, err := net.DialTimeout("tcp", pick.Addr, timeout)
		if err == nil {
			return conn, nil
		}
		lastErr = err

		for i, c := range remaining {
			if c.Addr == pick.Addr {
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}
	return nil, fmt.Errorf("transport: all candidates failed to dial, last error: %w", lastErr)
}
