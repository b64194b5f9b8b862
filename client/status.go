package client

import (
	"obex/connstate"
	"obex/header"
	"obex/opcode"
	"obex/packet"
)

// StateSnapshot is the read-only view returned by Client.State.
type StateSnapshot struct {
	State           connstate.State
	Connected       bool
	ConnectionID    *uint32
	MaxPacketLength uint16
	ErrorMessage    string
}

// State reports the connection's current coarse state.
func (c *Client) State() StateSnapshot {
	return StateSnapshot{
		State:           c.Conn.State,
		Connected:       c.Conn.Connected,
		ConnectionID:    c.Conn.ConnectionID,
		MaxPacketLength: c.Conn.MaxPacketLen,
		ErrorMessage:    c.Conn.ErrorMessage,
	}
}

// StatusDetail is the decoded-response view returned by Client.StatusDetail.
type StatusDetail struct {
	ResponseStatus   byte // raw wire byte, final bit included
	ResponseCode     byte // 7-bit code, final bit cleared
	ResponseCodeName string
	ErrorMessage string
}

// Status returns the coarse category of the most recently received
// response, or "" if no response has been decoded for the current request.
func (c *Client) Status() opcode.Category {
	if c.req == nil || c.req.LastPacket == nil {
		return ""
	}
	return opcode.CategorizeStatus(c.req.LastPacket.Code())
}

// StatusDetail returns the full status breakdown, including the
// synthesized 0x7F protocolerror code after a protocol-error Failed.
func (c *Client) StatusDetail() StatusDetail {
	d := StatusDetail{ErrorMessage: c.Conn.ErrorMessage}
	if c.req == nil || c.req.LastPacket == nil {
		if c.Conn.State == connstate.ErrorState {
			d.ResponseCode = opcode.ProtocolError
			d.ResponseCodeName = opcode.StatusName(opcode.ProtocolError)
		}
		return d
	}
	d.ResponseStatus = c.req.LastPacket.OpByte
	d.ResponseCode = c.req.LastPacket.Code()
	d.ResponseCodeName = opcode.StatusName(d.ResponseCode)
	if c.Conn.State == connstate.ErrorState {
		d.ResponseCode = opcode.ProtocolError
		d.ResponseCodeName = opcode.StatusName(opcode.ProtocolError)
	}
	return d
}

// Response returns the most recently decoded response packet, or nil.
func (c *Client) Response() *packet.Packet {
	if c.req == nil {
		return nil
	}
	return c.req.LastPacket
}

// Bodies returns the Body/EndOfBody values accumulated across every
// response packet of the current (or just-finished) request, in
// reception order — concatenating them reassembles the full object.
func (c *Client) Bodies() [][]byte {
	if c.req == nil {
		return nil
	}
	var out [][]byte
	for _, h := range c.req.HeadersIn {
		if h.Name == "Body" || h.Name == "EndOfBody" {
			out = append(out, h.Raw)
		}
	}
	return out
}

// Headers returns every accumulated response header matching name.
func (c *Client) Headers(name string) []header.Header {
	if c.req == nil {
		return nil
	}
	return header.FindAll(c.req.HeadersIn, name)
}
