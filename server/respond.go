package server

import (
	"fmt"

	"obex/connstate"
	"obex/header"
	"obex/opcode"
	"obex/packet"
)

// ErrNotResponding is returned by Respond/RespondContent when called
// outside the response phase (Input hasn't returned ActionRespond).
var ErrNotResponding = fmt.Errorf("server: not awaiting a response")

// ErrResponseTooLarge is fatal: multi-packet responses are out of scope
// for this release — respond/respond_content reject rather than guess
// at spanning.
var ErrResponseTooLarge = fmt.Errorf("server: response does not fit in one packet")

// Respond answers the request currently in the response phase with a
// bare status code (no Body/EndOfBody).
func (s *Server) Respond(status byte, headers []header.Header) ([]byte, error) {
	return s.respond(status, headers, nil, false)
}

// RespondContent answers with a status code plus an EndOfBody header
// carrying content. The caller supplies status explicitly.
func (s *Server) RespondContent(status byte, content []byte, headers []header.Header) ([]byte, error) {
	return s.respond(status, headers, content, true)
}

func (s *Server) respond(status byte, headers []header.Header, content []byte, withBody bool) ([]byte, error) {
	if s.Conn.State != connstate.Responding || s.req == nil {
		return nil, ErrNotResponding
	}
	rs := s.req

	var fixed []byte
	switch rs.Op {
	case opcode.Connect:
		if s.reqConnect != nil && s.reqConnect.MaxLength > connstate.DefaultMaxPacketLen {
			s.Conn.MaxPacketLen = s.reqConnect.MaxLength
		}
		id, err := s.Allocator.Next()
		if err != nil {
			msg := s.Conn.Fail(err.Error())
			return nil, fmt.Errorf("%s", msg)
		}
		s.Conn.SetConnectionID(id)
		s.Conn.Connected = true
		fixed = packet.EncodeConnectFields(0x10, 0, s.Conn.MaxPacketLen)
	case opcode.Disconnect:
		s.Conn.ClearConnectionID()
		s.Conn.MaxPacketLen = connstate.DefaultMaxPacketLen
		s.Conn.Connected = false
	}

	var blobs [][]byte
	if connHdr := s.Conn.ConnectionIDHeader(); connHdr != nil {
		// On a connect response this is the id just minted above; on
		// every later response it's the same id echoed back, same as
		// the client's own outgoing requests prepend it.
		blobs = append(blobs, connHdr)
	}
	for _, h := range headers {
		blobs = append(blobs, header.Encode(h))
	}
	if withBody {
		// Every response this release emits is final, so content is
		// always the last (only) fragment — EndOfBody, never Body.
		bodyHeader, err := header.Bytes("EndOfBody", content)
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, header.Encode(bodyHeader))
	}

	out := packet.EncodeRequest(status|opcode.FinalBit, fixed, blobs)
	if int(s.Conn.MaxPacketLen) > 0 && len(out) > int(s.Conn.MaxPacketLen) {
		msg := s.Conn.Fail(ErrResponseTooLarge.Error())
		return nil, fmt.Errorf("%s", msg)
	}

	s.Conn.State = connstate.Idle
	s.req = nil
	s.reqConnect = nil
	return out, nil
}
