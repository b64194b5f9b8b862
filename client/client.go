// Package client implements the OBEX client state machine: a pure,
// synchronous transform from public operation calls and inbound bytes to
// outgoing bytes and state transitions. It owns no socket — see the
// obex/transport package for the blocking adapter that drives it.
package client

import (
	"fmt"

	"obex/connstate"
	"obex/header"
	"obex/opcode"
	"obex/packet"
)

// Action is the result of every public operation and of Input.
type Action int

const (
	ActionContinue Action = iota
	ActionDone
	ActionWritable
	ActionFailed
)

func (a Action) String() string {
	switch a {
	case ActionContinue:
		return "Continue"
	case ActionDone:
		return "Done"
	case ActionWritable:
		return "Writable"
	case ActionFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Client is the per-connection OBEX client state machine. It is not
// goroutine-safe: one Client serves one connection, driven from a single
// caller at a time, per the "one request outstanding" invariant.
type Client struct {
	Conn *connstate.ConnectionState
	req  *connstate.RequestState
	put  *putState // non-nil only while req.Op == opcode.Put
}

// New creates a Client in its initial Idle/disconnected state.
func New() *Client {
	return &Client{Conn: connstate.New()}
}

// Reset reinitializes the whole connection — state, negotiated packet
// size, connected flag, and connection id.
func (c *Client) Reset() {
	c.Conn.Reset()
	c.req = nil
	c.put = nil
}

// Clear recovers from a request-local Failed action without disturbing
// Connected/MaxPacketLen/ConnectionID.
func (c *Client) Clear() {
	c.Conn.Clear()
	c.req = nil
	c.put = nil
}

// Connect rejects if already connected; emits a single connect packet;
// requires all headers to fit in one packet (connect cannot span);
// proposes max_packet_len = 65535.
func (c *Client) Connect(headers []header.Header) (Action, []byte, error) {
	if c.Conn.Connected {
		return ActionFailed, nil, ErrAlreadyConnected
	}
	if c.Conn.State != connstate.Idle {
		return ActionFailed, nil, ErrBusy
	}

	rs := connstate.NewRequest(opcode.Connect)
	rs.EnqueueHeaders(headers)
	fixed := packet.EncodeConnectFields(0x10, 0, 65535)

	out, err := c.buildOutgoingRequest(rs, nil, byte(opcode.Connect), fixed, true)
	if err != nil {
		return ActionFailed, nil, err
	}

	c.req = rs
	c.Conn.State = connstate.Busy
	return ActionContinue, out, nil
}

// Disconnect rejects if not connected; single packet only; marks
// connected=false immediately on emit. The connection id is kept for the
// disconnect packet itself and cleared once the final response arrives.
func (c *Client) Disconnect(headers []header.Header) (Action, []byte, error) {
	if !c.Conn.Connected {
		return ActionFailed, nil, ErrNotConnected
	}
	if c.Conn.State != connstate.Idle {
		return ActionFailed, nil, ErrBusy
	}

	rs := connstate.NewRequest(opcode.Disconnect)
	rs.EnqueueHeaders(headers)

	out, err := c.buildOutgoingRequest(rs, nil, byte(opcode.Disconnect), nil, true)
	if err != nil {
		return ActionFailed, nil, err
	}

	c.req = rs
	c.Conn.State = connstate.Busy
	c.Conn.Connected = false
	return ActionContinue, out, nil
}

// Get queues headers and emits the first request packet.
func (c *Client) Get(headers []header.Header) (Action, []byte, error) {
	if c.Conn.State != connstate.Idle {
		return ActionFailed, nil, ErrBusy
	}

	rs := connstate.NewRequest(opcode.Get)
	rs.EnqueueHeaders(headers)

	out, err := c.buildOutgoingRequest(rs, nil, byte(opcode.Get), nil, false)
	if err != nil {
		return ActionFailed, nil, err
	}

	c.req = rs
	c.Conn.State = connstate.Busy
	return ActionContinue, out, nil
}

// Abort sends a single, final-bit-set ABORT packet, terminating whatever
// op is currently in flight.
func (c *Client) Abort(headers []header.Header) (Action, []byte, error) {
	if c.Conn.State != connstate.Busy && c.Conn.State != connstate.Streaming {
		return ActionFailed, nil, fmt.Errorf("client: abort with no request in flight")
	}

	rs := connstate.NewRequest(opcode.Abort)
	rs.EnqueueHeaders(headers)

	out, err := c.buildOutgoingRequest(rs, nil, byte(opcode.Abort), nil, true)
	if err != nil {
		return ActionFailed, nil, err
	}

	c.req = rs
	c.put = nil
	c.Conn.State = connstate.Busy
	return ActionContinue, out, nil
}

// SetPathOptions selects the two SETPATH flag bits.
type SetPathOptions struct {
	Parent   bool // bit 0: go to parent before applying Name
	NoCreate bool // bit 1: do not create the folder if it's missing
}

// SetPath is single-packet; it sets flags bit 0 for "go to parent", bit
// 1 for "do not create if missing".
func (c *Client) SetPath(headers []header.Header, opts SetPathOptions) (Action, []byte, error) {
	if c.Conn.State != connstate.Idle {
		return ActionFailed, nil, ErrBusy
	}

	var flags byte
	if opts.Parent {
		flags |= 0x01
	}
	if opts.NoCreate {
		flags |= 0x02
	}

	rs := connstate.NewRequest(opcode.SetPath)
	rs.EnqueueHeaders(headers)
	fixed := packet.EncodeSetPathFields(flags, 0)

	out, err := c.buildOutgoingRequest(rs, nil, byte(opcode.SetPath), fixed, true)
	if err != nil {
		return ActionFailed, nil, err
	}

	c.req = rs
	c.Conn.State = connstate.Busy
	return ActionContinue, out, nil
}

// Session always fails: this release implements the generic profile
// only, not the OBEX session layer.
func (c *Client) Session(headers []header.Header) (Action, []byte, error) {
	return ActionFailed, nil, ErrUnsupported
}

// Input feeds inbound bytes to the client. Call it with whatever the
// transport read, including zero bytes to re-check a previously
// incomplete buffer.
func (c *Client) Input(data []byte) (Action, []byte, error) {
	if c.req == nil {
		return ActionFailed, nil, fmt.Errorf("client: input with no request in flight")
	}
	rs := c.req
	rs.InBuf = append(rs.InBuf, data...)

	p, err := packet.DecodeResponse(rs.InBuf, rs.Op)
	if err == packet.ErrTruncated {
		return ActionContinue, nil, nil
	}
	if err != nil {
		msg := c.Conn.Fail(err.Error())
		return ActionFailed, nil, fmt.Errorf("%s", msg)
	}
	rs.InBuf = rs.InBuf[p.Length:]
	rs.HeadersIn = append(rs.HeadersIn, p.Headers...)
	rs.LastPacket = p

	code := p.Code()

	switch rs.Op {
	case opcode.Connect:
		return c.inputSingleShot(rs, p, code, c.applyConnectResult)
	case opcode.Disconnect:
		return c.inputSingleShot(rs, p, code, func(*packet.Packet) { c.Conn.ClearConnectionID() })
	case opcode.SetPath, opcode.Abort:
		return c.inputSingleShot(rs, p, code, nil)
	case opcode.Put, opcode.Get:
		return c.inputMultiPacket(rs, p, code)
	default:
		return c.protocolError(rs, fmt.Sprintf("input received for unsupported op %s", rs.Op))
	}
}

// inputSingleShot handles the disconnect/setpath/abort/connect family:
// continue is always a protocol error (none of these span packets), and
// a non-final response is likewise malformed.
func (c *Client) inputSingleShot(rs *connstate.RequestState, p *packet.Packet, code byte, onDone func(*packet.Packet)) (Action, []byte, error) {
	if code == opcode.Continue {
		return c.protocolError(rs, fmt.Sprintf("CONTINUE packet received for %s request", rs.Op))
	}
	if !p.Final {
		return c.protocolError(rs, fmt.Sprintf("non-final, non-continue response received for %s request", rs.Op))
	}
	if onDone != nil {
		onDone(p)
	}
	c.Conn.State = connstate.Idle
	return ActionDone, nil, nil
}

func (c *Client) applyConnectResult(p *packet.Packet) {
	if p.Code() != opcode.OK {
		return
	}
	c.Conn.Connected = true
	if h, ok := header.Find(p.Headers, "ConnectionId"); ok {
		c.Conn.SetConnectionID(h.U32)
	}
	if p.Connect != nil && p.Connect.MaxLength > connstate.DefaultMaxPacketLen {
		c.Conn.MaxPacketLen = p.Connect.MaxLength
	}
}

// inputMultiPacket handles put/get: continue means send the next
// outgoing packet or go Writable; anything else needs the final bit.
func (c *Client) inputMultiPacket(rs *connstate.RequestState, p *packet.Packet, code byte) (Action, []byte, error) {
	if code != opcode.Continue {
		if !p.Final {
			return c.protocolError(rs, fmt.Sprintf("non-final, non-continue response received for %s request", rs.Op))
		}
		c.Conn.State = connstate.Idle
		c.put = nil
		return ActionDone, nil, nil
	}

	moreToSend := len(rs.OutQueue) > 0 || (c.put != nil && len(c.put.pendingContent) > 0)
	if moreToSend {
		out, err := c.buildOutgoingRequest(rs, c.put, byte(rs.Op), nil, false)
		if err != nil {
			return ActionFailed, nil, err
		}
		return ActionContinue, out, nil
	}

	// Nothing queued for the next packet: a streaming put waits for the
	// next chunk from the application.
	if c.put != nil && rs.Streaming {
		c.Conn.State = connstate.Streaming
		return ActionWritable, nil, nil
	}
	// A get whose own request is already fully sent can still receive a
	// multi-packet response: continue here just means more response
	// data is on its way, with nothing for the client to send back.
	if rs.Op == opcode.Get {
		return ActionContinue, nil, nil
	}
	return c.protocolError(rs, fmt.Sprintf("CONTINUE packet received with nothing left to send for %s request", rs.Op))
}

func (c *Client) protocolError(rs *connstate.RequestState, msg string) (Action, []byte, error) {
	full := fmt.Sprintf("%s (status 0x%02X)", msg, opcode.ProtocolError)
	c.Conn.Fail(full)
	c.put = nil
	return ActionFailed, nil, fmt.Errorf("client: %s", full)
}
