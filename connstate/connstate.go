// Package connstate holds the ConnectionState and RequestState structs
// shared by the client and server state machines — the explicit-struct
// replacement for a single per-instance state dictionary.
package connstate

import (
	"obex/header"
	"obex/opcode"
	"obex/packet"
)

// State is the connection's coarse lifecycle state.
type State int

const (
	Idle State = iota
	Busy
	Streaming
	Responding
	ErrorState
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Busy:
		return "Busy"
	case Streaming:
		return "Streaming"
	case Responding:
		return "Responding"
	case ErrorState:
		return "Error"
	default:
		return "Unknown"
	}
}

// DefaultMaxPacketLen is the OBEX-mandated minimum/initial packet size.
const DefaultMaxPacketLen = 255

// ConnectionState is the per-connection state shared by client.Client and
// server.Server: it outlives any single request and is created by the
// application for the span of the underlying transport session.
type ConnectionState struct {
	State               State
	MaxPacketLen        uint16
	Connected           bool
	ConnectionID        *uint32
	connectionIDHeader  []byte // pre-encoded ConnectionId header, ready to prepend
	ErrorMessage        string
}

// New creates a ConnectionState in its initial Idle/disconnected form.
func New() *ConnectionState {
	return &ConnectionState{State: Idle, MaxPacketLen: DefaultMaxPacketLen}
}

// Reset reinitializes the whole connection: state, negotiated packet
// size, connected flag, and connection id are all cleared.
func (c *ConnectionState) Reset() {
	c.State = Idle
	c.MaxPacketLen = DefaultMaxPacketLen
	c.Connected = false
	c.ConnectionID = nil
	c.connectionIDHeader = nil
	c.ErrorMessage = ""
}

// Clear recovers from a request-local Failed action without disturbing
// Connected/MaxPacketLen/ConnectionID — use this after a Failed action
// whose cause was scoped to the just-finished request, Reset after one
// that calls the whole connection's validity into question.
func (c *ConnectionState) Clear() {
	c.State = Idle
	c.ErrorMessage = ""
}

// Fail transitions into ErrorState recording msg, and returns msg so
// callers can chain it straight into an error value.
func (c *ConnectionState) Fail(msg string) string {
	c.State = ErrorState
	c.ErrorMessage = msg
	return msg
}

// SetConnectionID stores id and pre-encodes its header form so the
// outgoing-packet builder never has to re-encode it per packet.
func (c *ConnectionState) SetConnectionID(id uint32) {
	c.ConnectionID = &id
	h, _ := header.U32("ConnectionId", id) // ConnectionId is always a registered U32 header
	c.connectionIDHeader = header.Encode(h)
}

// ClearConnectionID drops the stored connection id (disconnect).
func (c *ConnectionState) ClearConnectionID() {
	c.ConnectionID = nil
	c.connectionIDHeader = nil
}

// ConnectionIDHeader returns the pre-encoded ConnectionId header blob, or
// nil if none is set.
func (c *ConnectionState) ConnectionIDHeader() []byte {
	return c.connectionIDHeader
}

// RequestState is the per-in-flight-request scratch state: the
// accumulated input buffer, outgoing header queue, and everything
// gathered from the response(s) seen so far.
type RequestState struct {
	Op          opcode.Op
	InBuf       []byte
	OutQueue    [][]byte // encoded header blobs, FIFO
	HeadersIn   []header.Header
	LastPacket  *packet.Packet
	Streaming   bool
}

// NewRequest starts a fresh RequestState for op.
func NewRequest(op opcode.Op) *RequestState {
	return &RequestState{Op: op}
}

// Enqueue appends an already-encoded header blob to the outgoing queue.
func (r *RequestState) Enqueue(blob []byte) {
	r.OutQueue = append(r.OutQueue, blob)
}

// EnqueueHeaders encodes and enqueues each header in order.
func (r *RequestState) EnqueueHeaders(hs []header.Header) {
	for _, h := range hs {
		r.Enqueue(header.Encode(h))
	}
}
