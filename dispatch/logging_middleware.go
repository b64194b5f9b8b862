package dispatch

import (
	"context"
	"log"
	"time"
)

// LoggingMiddleware records the op, status, and elapsed time of every
// respond/respond_content call the wrapped handler produces.
func LoggingMiddleware() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request) *Response {
			start := time.Now()
			resp := next(ctx, req)
			log.Printf("dispatch: op=%s status=0x%02X duration=%s", req.Op, resp.Status, time.Since(start))
			return resp
		}
	}
}
