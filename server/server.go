// Package server implements the OBEX server state machine: request-phase
// accumulation, final-bit detection, and a response phase that the
// application drives explicitly via Respond/RespondContent. Like client,
// it is a pure synchronous transform — no listener, no goroutines; see
// obex/transport for the blocking adapter.
package server

import (
	"fmt"

	"obex/connstate"
	"obex/header"
	"obex/idalloc"
	"obex/opcode"
	"obex/packet"
)

// Action is the result of Server.Input.
type Action int

const (
	ActionContinue Action = iota // ack emitted, stay in the request phase
	ActionRespond                // final-bit request received; Op names which one
	ActionFailed
)

func (a Action) String() string {
	switch a {
	case ActionContinue:
		return "Continue"
	case ActionRespond:
		return "Respond"
	case ActionFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Server is the per-connection OBEX server state machine.
type Server struct {
	Conn      *connstate.ConnectionState
	Allocator idalloc.Allocator

	req        *connstate.RequestState
	reqConnect *packet.ConnectFields // set only while Op == opcode.Connect
}

// New creates a Server with alloc minting connection ids on connect.
// Pass idalloc.NewLocalAllocator() for a single-process gateway.
func New(alloc idalloc.Allocator) *Server {
	return &Server{Conn: connstate.New(), Allocator: alloc}
}

// Reset reinitializes the whole connection.
func (s *Server) Reset() {
	s.Conn.Reset()
	s.req = nil
	s.reqConnect = nil
}

// Clear recovers from a request-local Failed action without disturbing
// Connected/MaxPacketLen/ConnectionID.
func (s *Server) Clear() {
	s.Conn.Clear()
	s.req = nil
	s.reqConnect = nil
}

// Input feeds inbound bytes. While the request spans several packets, it
// returns (Continue, ackBytes) for every non-final packet; once a
// final-bit packet arrives it returns (Respond, nil) and the application
// must call Respond or RespondContent before the next Input.
func (s *Server) Input(data []byte) (Action, []byte, error) {
	if s.req == nil {
		s.req = &connstate.RequestState{}
	}
	rs := s.req
	rs.InBuf = append(rs.InBuf, data...)

	p, err := packet.DecodeRequest(rs.InBuf)
	if err == packet.ErrTruncated {
		return ActionContinue, nil, nil
	}
	if err != nil {
		msg := s.Conn.Fail(err.Error())
		return ActionFailed, nil, fmt.Errorf("%s", msg)
	}
	op := opcode.Bare(p.OpByte)
	if rs.LastPacket == nil {
		rs.Op = op
	} else if rs.Op != op {
		msg := s.Conn.Fail(fmt.Sprintf("opcode changed mid-request: %s then %s", rs.Op, op))
		return ActionFailed, nil, fmt.Errorf("%s", msg)
	}
	if p.Connect != nil {
		s.reqConnect = p.Connect
	}

	rs.InBuf = rs.InBuf[p.Length:]
	rs.HeadersIn = append(rs.HeadersIn, p.Headers...)
	rs.LastPacket = p

	if !p.Final {
		s.Conn.State = connstate.Busy
		ack := packet.EncodeRequest(opcode.Continue|opcode.FinalBit, nil, nil)
		return ActionContinue, ack, nil
	}

	s.Conn.State = connstate.Responding
	return ActionRespond, nil, nil
}

// Op returns the opcode of the request currently awaiting a response.
// Valid only after Input has returned ActionRespond.
func (s *Server) Op() opcode.Op {
	if s.req == nil {
		return 0
	}
	return s.req.Op
}

// RequestHeaders returns the accumulated headers of the request
// currently awaiting a response.
func (s *Server) RequestHeaders() []header.Header {
	if s.req == nil {
		return nil
	}
	return s.req.HeadersIn
}
