package dispatch

import (
	"context"
	"time"

	"obex/opcode"
)

// TimeoutMiddleware bounds how long the wrapped handler may take to
// produce a Response. The handler goroutine is not cancelled when the
// timeout fires — it keeps running in the background; the timeout only
// controls when the dispatcher stops waiting on it. A handler that wants
// true cancellation must watch ctx.Done() itself.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request) *Response {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			done := make(chan *Response, 1) // buffered: no leak if the timeout fires first
			go func() {
				done <- next(ctx, req)
			}()

			select {
			case resp := <-done:
				return resp
			case <-ctx.Done():
				// The wire protocol has no dedicated "handler timed out"
				// code; the server-error range is the closest fit.
				return &Response{Status: opcode.ServerErrorLo}
			}
		}
	}
}
