package client

import "errors"

// Usage errors: the core rejects the call outright, state is untouched.
var (
	ErrAlreadyConnected    = errors.New("client: already connected")
	ErrNotConnected        = errors.New("client: not connected")
	ErrBusy                = errors.New("client: a request is already in progress")
	ErrUnsupported         = errors.New("client: operation not supported")
	ErrSpansMultiplePackets = errors.New("client: headers do not fit in a single packet")
	ErrStreamingHeaders    = errors.New("client: put_stream headers only allowed on the first call")
)

// ErrHeaderTooLarge is a capacity error: a single header exceeds the
// packet-size budget. Unlike the usage errors above, this is fatal —
// it drives the connection into connstate.ErrorState.
var ErrHeaderTooLarge = errors.New("client: a single header exceeds the packet size budget")
