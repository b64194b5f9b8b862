package client

import (
	"obex/connstate"
	"obex/header"
	"obex/opcode"
)

// putState is the body-fragmentation scratch state that lives alongside
// a RequestState for the duration of a put/put_stream/put_delete op.
type putState struct {
	pendingContent []byte
	nextBodyName   string // "Body" or "EndOfBody"
	bodyStarted    bool   // true once at least one fragment (even empty) has been emitted
	suppressBody   bool   // true for put_delete: no Body header at all
}

// Put splits content into Body header fragments sized to fit the
// negotiated max_packet_len, prepending a Length header computed from
// len(content). The final fragment stays a Body header — EndOfBody is
// reserved for streaming puts.
func (c *Client) Put(content []byte, headers []header.Header) (Action, []byte, error) {
	if c.Conn.State != connstate.Idle {
		return ActionFailed, nil, ErrBusy
	}

	length, err := header.U32("Length", uint32(len(content)))
	if err != nil {
		return ActionFailed, nil, err
	}

	rs := connstate.NewRequest(opcode.Put)
	rs.EnqueueHeaders(append([]header.Header{length}, headers...))
	put := &putState{pendingContent: content, nextBodyName: "Body"}

	out, err := c.buildOutgoingRequest(rs, put, byte(opcode.Put), nil, false)
	if err != nil {
		return ActionFailed, nil, err
	}

	c.req = rs
	c.put = put
	c.Conn.State = connstate.Busy
	return ActionContinue, out, nil
}

// PutDelete emits a put request with no body and no Length header — the
// OBEX idiom for deleting the named object.
func (c *Client) PutDelete(headers []header.Header) (Action, []byte, error) {
	if c.Conn.State != connstate.Idle {
		return ActionFailed, nil, ErrBusy
	}

	rs := connstate.NewRequest(opcode.Put)
	rs.EnqueueHeaders(headers)
	put := &putState{suppressBody: true}

	out, err := c.buildOutgoingRequest(rs, put, byte(opcode.Put), nil, false)
	if err != nil {
		return ActionFailed, nil, err
	}

	c.req = rs
	c.put = put
	c.Conn.State = connstate.Busy
	return ActionContinue, out, nil
}

// PutStream sends one chunk of a streaming put. The first call (state
// must be Idle) may carry headers and starts the request; subsequent
// calls (state must be Streaming, following a Writable) take no headers
// and resume it. An empty chunk terminates the stream: it sends an
// empty EndOfBody with the final bit set and clears streaming mode.
func (c *Client) PutStream(chunk []byte, headers []header.Header) (Action, []byte, error) {
	var rs *connstate.RequestState
	var put *putState

	switch c.Conn.State {
	case connstate.Idle:
		rs = connstate.NewRequest(opcode.Put)
		rs.Streaming = true
		rs.EnqueueHeaders(headers)
		put = &putState{nextBodyName: "Body"}
		c.req = rs
		c.put = put
	case connstate.Streaming:
		if len(headers) > 0 {
			return ActionFailed, nil, ErrStreamingHeaders
		}
		rs = c.req
		put = c.put
	default:
		return ActionFailed, nil, ErrBusy
	}

	put.pendingContent = chunk
	if len(chunk) == 0 {
		put.nextBodyName = "EndOfBody"
		put.bodyStarted = false // force nextBodyFragment to emit the (empty) terminator
		rs.Streaming = false
	}

	out, err := c.buildOutgoingRequest(rs, put, byte(opcode.Put), nil, false)
	if err != nil {
		return ActionFailed, nil, err
	}

	c.Conn.State = connstate.Busy
	return ActionContinue, out, nil
}
