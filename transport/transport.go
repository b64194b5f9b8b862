// Package transport implements the synchronous completion adapter: a
// small driver loop that pumps whole OBEX packets between a blocking
// byte-stream handle and a client.Client or server.Server state machine.
//
// Unlike a multiplexed transport that serves many concurrent in-flight
// calls over one connection via a sequence-numbered pending map, OBEX
// allows at most one request outstanding per connection — the state
// machines themselves enforce it. There is nothing to multiplex, so this
// adapter is a single blocking read/write loop, not a background
// recvLoop routing responses to waiting goroutines.
package transport

import (
	"fmt"
	"io"
	"time"

	"obex/packet"
)

// TransportHandle is the minimal surface the adapter needs from an
// underlying connection — satisfied by net.Conn, an RFCOMM channel
// wrapper, or a test double, without this package importing net at all.
type TransportHandle interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// deadlineSetter is implemented by transports that support timeouts
// (net.Conn does); handles that don't are driven with no deadline.
type deadlineSetter interface {
	SetDeadline(t time.Time) error
}

// ReadPacket reads exactly one OBEX packet off tp: the 3-byte
// opcode/length prefix, then however many more bytes the declared length
// calls for, each read with io.ReadFull.
func ReadPacket(tp TransportHandle) ([]byte, error) {
	prefix := make([]byte, 3)
	if _, err := io.ReadFull(tp, prefix); err != nil {
		return nil, fmt.Errorf("transport: reading packet prefix: %w", err)
	}
	length, _ := packet.LengthProbe(prefix)
	if length < 3 {
		return nil, fmt.Errorf("transport: declared packet length %d shorter than the prefix", length)
	}
	buf := make([]byte, length)
	copy(buf, prefix)
	if length > 3 {
		if _, err := io.ReadFull(tp, buf[3:]); err != nil {
			return nil, fmt.Errorf("transport: reading packet body: %w", err)
		}
	}
	return buf, nil
}

// withDeadline runs fn with tp's deadline set to deadline (zero value
// clears it), always restoring the original no-deadline state on the
// way out. Handles that don't support deadlines run fn unmodified.
func withDeadline(tp TransportHandle, deadline time.Time, fn func() error) error {
	ds, ok := tp.(deadlineSetter)
	if !ok {
		return fn()
	}
	if err := ds.SetDeadline(deadline); err != nil {
		return fmt.Errorf("transport: setting deadline: %w", err)
	}
	defer ds.SetDeadline(time.Time{})
	return fn()
}

// readPacketWithTimeout is ReadPacket bounded by timeout (0 = no bound)
// on transports that support deadlines.
func readPacketWithTimeout(tp TransportHandle, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		return ReadPacket(tp)
	}
	var buf []byte
	err := withDeadline(tp, time.Now().Add(timeout), func() error {
		var readErr error
		buf, readErr = ReadPacket(tp)
		return readErr
	})
	return buf, err
}
