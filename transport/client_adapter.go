package transport

import (
	"time"

	"obex/client"
)

// DriveClient pumps an already-started client request to completion. The
// caller obtains initial from whichever client.Client verb it invoked
// (Connect, Put, Get, ...) and hands it here along with the live
// transport; DriveClient writes it, then alternates ReadPacket/Input
// until the state machine reports Done, Writable, or Failed, writing
// every intermediate packet Input produces back out in between. A
// non-zero timeout bounds each individual read on transports that
// support deadlines; zero means block indefinitely.
//
// On Writable (a streaming put waiting for its next chunk), the caller
// is expected to call client.PutStream again and invoke DriveClient once
// more with its output to keep the exchange going.
func DriveClient(tp TransportHandle, c *client.Client, initial []byte, timeout time.Duration) (client.Action, error) {
	if len(initial) > 0 {
		if _, err := tp.Write(initial); err != nil {
			return client.ActionFailed, err
		}
	}

	for {
		buf, err := readPacketWithTimeout(tp, timeout)
		if err != nil {
			return client.ActionFailed, err
		}
		action, out, err := c.Input(buf)
		if err != nil {
			return client.ActionFailed, err
		}
		if action != client.ActionContinue {
			return action, nil
		}
		if len(out) > 0 {
			if _, err := tp.Write(out); err != nil {
				return client.ActionFailed, err
			}
		}
	}
}
