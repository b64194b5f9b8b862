package client

import (
	"fmt"

	"obex/connstate"
	"obex/header"
	"obex/opcode"
	"obex/packet"
)

// popHeaders pops as many encoded header blobs as fit in freeSpace off
// rs's outgoing queue, FIFO. Returns an error only when the very first
// queued header doesn't fit — that's a capacity error, not a span error.
func popHeaders(rs *connstate.RequestState, freeSpace int) (chosen [][]byte, consumedAll bool, err error) {
	for len(rs.OutQueue) > 0 {
		next := rs.OutQueue[0]
		if len(next) > freeSpace {
			break
		}
		chosen = append(chosen, next)
		freeSpace -= len(next)
		rs.OutQueue = rs.OutQueue[1:]
	}
	consumedAll = len(rs.OutQueue) == 0
	if len(chosen) == 0 && !consumedAll {
		err = fmt.Errorf("%w", ErrHeaderTooLarge)
	}
	return chosen, consumedAll, err
}

// nextBodyFragment slices the next Body/EndOfBody fragment off rs's
// pending content, sized to fit freeSpace once the 3-byte Bytes-header
// overhead is subtracted. Returns (nil, true) once everything pending
// has already been flushed (including the single empty fragment emitted
// for zero-length content).
func nextBodyFragment(rs *putState, freeSpace int) (blob []byte, bodyDone bool) {
	if rs.suppressBody {
		return nil, true
	}
	if rs.bodyStarted && len(rs.pendingContent) == 0 {
		return nil, true
	}
	const bodyOverhead = 3
	avail := freeSpace - bodyOverhead
	if avail < 0 {
		avail = 0
	}
	n := len(rs.pendingContent)
	if n > avail {
		n = avail
	}
	if n == 0 && len(rs.pendingContent) > 0 {
		// Nothing fits in this packet; caller must try again next packet.
		return nil, false
	}
	chunk := rs.pendingContent[:n]
	rs.pendingContent = rs.pendingContent[n:]
	rs.bodyStarted = true

	h, err := header.Bytes(rs.nextBodyName, chunk)
	if err != nil {
		// nextBodyName is always "Body" or "EndOfBody", both registered.
		panic(err)
	}
	return header.Encode(h), len(rs.pendingContent) == 0
}

// buildOutgoingRequest runs the canonical outgoing-packet-construction
// algorithm: connection id first, then FIFO headers, then (for put) a
// body fragment, then the final-bit decision.
//
// single is true for the single-packet-only ops (connect, disconnect,
// setpath, session, abort): for those, failing to drain the whole queue
// in one packet is a usage error, not a sign to keep spanning packets.
func (c *Client) buildOutgoingRequest(rs *connstate.RequestState, put *putState, opByte byte, extraFixed []byte, single bool) ([]byte, error) {
	freeSpace := int(c.Conn.MaxPacketLen) - 3 - len(extraFixed)

	var blobs [][]byte
	if connHdr := c.Conn.ConnectionIDHeader(); connHdr != nil {
		if len(connHdr) > freeSpace {
			err := fmt.Errorf("%w: connection id header does not fit in max_packet_len", ErrHeaderTooLarge)
			c.Conn.Fail(err.Error())
			return nil, err
		}
		blobs = append(blobs, connHdr)
		freeSpace -= len(connHdr)
	}

	popped, consumedQueue, err := popHeaders(rs, freeSpace)
	if err != nil {
		c.Conn.Fail(err.Error())
		return nil, err
	}
	blobs = append(blobs, popped...)
	for _, b := range popped {
		freeSpace -= len(b)
	}

	bodyDone := true
	if put != nil {
		var bodyBlob []byte
		bodyBlob, bodyDone = nextBodyFragment(put, freeSpace)
		if bodyBlob != nil {
			blobs = append(blobs, bodyBlob)
		}
	}

	if single && !(consumedQueue && bodyDone) {
		// Push the popped headers back onto the front of the queue so a
		// caller inspecting rs isn't left with a half-drained queue after
		// a rejected call.
		rs.OutQueue = append(append([][]byte{}, popped...), rs.OutQueue...)
		return nil, fmt.Errorf("%w for %s", ErrSpansMultiplePackets, rs.Op)
	}

	finalBit := byte(0)
	if !single && consumedQueue && bodyDone && !rs.Streaming {
		finalBit = opcode.FinalBit
	}
	return packet.EncodeRequest(opByte|finalBit, extraFixed, blobs), nil
}
