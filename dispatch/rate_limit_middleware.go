package dispatch

import (
	"context"

	"golang.org/x/time/rate"

	"obex/opcode"
)

// RateLimitMiddleware guards how fast a single connection's registered
// handlers may be invoked with a token-bucket limiter: tokens refill at r
// per second up to burst, and an exhausted bucket rejects immediately
// rather than blocking the state machine.
//
// The limiter is created once in this outer closure, not per request —
// a fresh limiter per call would hand every request a full bucket and
// defeat the point of rate limiting.
func RateLimitMiddleware(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request) *Response {
			if !limiter.Allow() {
				return &Response{Status: opcode.ServerErrorLo}
			}
			return next(ctx, req)
		}
	}
}
