// Package dispatch turns the server state machine's "respond to this op"
// surfacing into a registered-handler-plus-middleware-chain call, the way
// an application server wires logging/timeout/rate-limiting around a
// business handler.
//
// Onion model execution order:
//
//	Chain(A, B, C)(handler)  →  A(B(C(handler)))
//
//	Request:   A.before → B.before → C.before → handler
//	Response:  handler → C.after → B.after → A.after
package dispatch

import (
	"context"

	"obex/header"
	"obex/opcode"
	"obex/server"
)

// Request is what a registered Handler sees: the op currently awaiting a
// response and the headers accumulated across the whole request phase.
type Request struct {
	Op      opcode.Op
	Headers []header.Header
}

// Response is what a Handler returns. A nil Content means Respond is
// used; non-nil (including empty, non-nil slice) means RespondContent.
type Response struct {
	Status  byte
	Headers []header.Header
	Content []byte
}

// HandlerFunc is the function signature for business handlers. Both the
// raw handler and every middleware-wrapped handler share this signature.
type HandlerFunc func(ctx context.Context, req *Request) *Response

// Middleware takes a handler and returns a new handler that wraps it —
// the decorator pattern, one layer of cross-cutting behavior per call.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain composes multiple middlewares into one, built right to left so
// the first middleware listed is the outermost layer (runs first on the
// way in, last on the way out).
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

func notFoundHandler(op opcode.Op) HandlerFunc {
	return func(ctx context.Context, req *Request) *Response {
		// No handler registered for this op: a server-side configuration
		// gap, not a client error, so this answers in the server-error range.
		return &Response{Status: opcode.ServerErrorHi}
	}
}

// Server wraps a server.Server with a registered-handler table and a
// middleware chain, so the application writes one HandlerFunc per op
// instead of manually calling Respond/RespondContent after every Input.
type Server struct {
	*server.Server
	handlers map[opcode.Op]HandlerFunc
	chain    Middleware
}

// New wraps srv. Register handlers with Handle and cross-cutting
// behavior with Use before calling Dispatch.
func New(srv *server.Server) *Server {
	return &Server{Server: srv, handlers: make(map[opcode.Op]HandlerFunc)}
}

// Handle registers fn as the business handler for op.
func (s *Server) Handle(op opcode.Op, fn HandlerFunc) {
	s.handlers[op] = fn
}

// Use appends mw as the next-innermost layer around every handler call.
// Call Use in outermost-first order, same as Chain's argument order.
func (s *Server) Use(mw ...Middleware) {
	if s.chain == nil {
		s.chain = Chain(mw...)
		return
	}
	s.chain = Chain(append([]Middleware{s.chain}, mw...)...)
}

// Dispatch looks up the handler registered for the server's current op,
// runs it through the middleware chain, and answers via Respond or
// RespondContent. Call it only after Input has returned server.ActionRespond.
func (s *Server) Dispatch(ctx context.Context) ([]byte, error) {
	op := s.Server.Op()
	fn, ok := s.handlers[op]
	if !ok {
		fn = notFoundHandler(op)
	}
	if s.chain != nil {
		fn = s.chain(fn)
	}

	req := &Request{Op: op, Headers: s.Server.RequestHeaders()}
	resp := fn(ctx, req)

	if resp.Content != nil {
		return s.Server.RespondContent(resp.Status, resp.Content, resp.Headers)
	}
	return s.Server.Respond(resp.Status, resp.Headers)
}
