package transport

import (
	"time"

	"obex/server"
)

// DriveServer reads and feeds packets to s until a request's final bit
// arrives (ActionRespond) or the connection fails, writing every
// continue-ack Input produces in between. The caller is expected to call
// Respond or RespondContent and write the result itself, then call
// DriveServer again to pump the next request on the same connection. A
// non-zero timeout bounds each individual read on transports that
// support deadlines; zero means block indefinitely.
func DriveServer(tp TransportHandle, s *server.Server, timeout time.Duration) (server.Action, error) {
	for {
		buf, err := readPacketWithTimeout(tp, timeout)
		if err != nil {
			return server.ActionFailed, err
		}
		action, out, err := s.Input(buf)
		if err != nil {
			return server.ActionFailed, err
		}
		if action == server.ActionRespond {
			return action, nil
		}
		if len(out) > 0 {
			if _, err := tp.Write(out); err != nil {
				return server.ActionFailed, err
			}
		}
	}
}
