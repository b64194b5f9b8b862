// Package packet implements the OBEX packet codec: the opcode/status byte,
// 16-bit length, per-opcode fixed fields, and header list that make up
// every packet on the wire.
package packet

import (
	"errors"
	"fmt"

	"obex/header"
	"obex/opcode"
	"obex/wire"
)

// ErrTruncated is returned when a buffer doesn't yet hold a full packet —
// callers should treat this as "need more bytes", not a fatal error.
var ErrTruncated = errors.New("packet: truncated")

// ErrMalformed is a fatal decode error: the bytes present do not form a
// valid packet even once complete.
var ErrMalformed = errors.New("packet: malformed")

// ConnectFields are the four fixed bytes that follow the opcode/length
// prefix on a connect request or response.
type ConnectFields struct {
	MajorVersion byte
	MinorVersion byte
	Flags        byte
	MaxLength    uint16
}

// SetPathFields are the two fixed bytes that follow the opcode/length
// prefix on a setpath request.
type SetPathFields struct {
	Flags     byte
	Constants byte
}

// Packet is a fully decoded OBEX packet.
type Packet struct {
	OpByte  byte // the raw wire byte: opcode/status with the final bit
	Final   bool
	Length  int // PacketLength: includes the 3-byte prefix
	Connect *ConnectFields
	SetPath *SetPathFields
	Headers []header.Header
}

// Code returns the 7-bit opcode/status value with the final bit cleared.
func (p *Packet) Code() byte {
	return p.OpByte &^ opcode.FinalBit
}

// LengthProbe reads the declared packet length from the first 3 bytes of
// buf. Returns ok=false if fewer than 3 bytes are available.
func LengthProbe(buf []byte) (length int, ok bool) {
	if len(buf) < 3 {
		return 0, false
	}
	return int(wire.Uint16(buf[1:3])), true
}

// Complete reports whether buf holds at least as many bytes as the
// packet it begins declares.
func Complete(buf []byte) bool {
	length, ok := LengthProbe(buf)
	if !ok {
		return false
	}
	return len(buf) >= length
}

// EncodeRequest serializes opByte|total_len|fixed|headers. opByte is the
// raw wire byte the caller has already computed (including the final bit
// where applicable) — this function does not decide final-bit semantics,
// that's the state machines' job (see client.buildOutgoingRequest).
func EncodeRequest(opByte byte, fixed []byte, headerBlobs [][]byte) []byte {
	total := 3 + len(fixed)
	for _, b := range headerBlobs {
		total += len(b)
	}
	buf := make([]byte, 3, total)
	buf[0] = opByte
	wire.PutUint16(buf[1:3], uint16(total))
	buf = append(buf, fixed...)
	for _, b := range headerBlobs {
		buf = append(buf, b...)
	}
	return buf
}

// FixedFieldsFor returns how many bytes of fixed fields follow the
// opcode/length prefix for a given bare request opcode.
func FixedFieldsFor(op opcode.Op) int {
	switch op {
	case opcode.Connect:
		return 4
	case opcode.SetPath:
		return 2
	default:
		return 0
	}
}

// DecodeRequest parses a complete request packet. It returns ErrTruncated
// when buf does not yet satisfy Complete(buf); bytes past the declared
// length are ignored.
func DecodeRequest(buf []byte) (*Packet, error) {
	if !Complete(buf) {
		return nil, ErrTruncated
	}
	length, _ := LengthProbe(buf)
	opByte := buf[0]
	op := opcode.Bare(opByte)
	fixedLen := FixedFieldsFor(op)

	if 3+fixedLen > length {
		return nil, fmt.Errorf("%w: declared length %d too short for %s fixed fields", ErrMalformed, length, op)
	}

	p := &Packet{OpByte: opByte, Final: opcode.IsFinal(opByte), Length: length}
	switch op {
	case opcode.Connect:
		f := buf[3 : 3+4]
		p.Connect = &ConnectFields{
			MajorVersion: f[0] >> 4,
			MinorVersion: f[0] & 0x0F,
			Flags:        f[1],
			MaxLength:    wire.Uint16(f[2:4]),
		}
	case opcode.SetPath:
		f := buf[3 : 3+2]
		p.SetPath = &SetPathFields{Flags: f[0], Constants: f[1]}
	}

	hdrBuf := buf[3+fixedLen : length]
	hs, err := header.DecodeAll(hdrBuf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	p.Headers = hs
	return p, nil
}

// DecodeResponse parses a complete response packet. forOp is the opcode
// of the request this response answers — the caller must supply it,
// since a response byte alone cannot say whether connect-style fixed
// fields are present.
func DecodeResponse(buf []byte, forOp opcode.Op) (*Packet, error) {
	if !Complete(buf) {
		return nil, ErrTruncated
	}
	length, _ := LengthProbe(buf)
	statusByte := buf[0]

	fixedLen := 0
	if forOp == opcode.Connect {
		fixedLen = 4
	}
	if 3+fixedLen > length {
		return nil, fmt.Errorf("%w: declared length %d too short for response fixed fields", ErrMalformed, length)
	}

	p := &Packet{OpByte: statusByte, Final: opcode.IsFinal(statusByte), Length: length}
	if forOp == opcode.Connect {
		f := buf[3 : 3+4]
		p.Connect = &ConnectFields{
			MajorVersion: f[0] >> 4,
			MinorVersion: f[0] & 0x0F,
			Flags:        f[1],
			MaxLength:    wire.Uint16(f[2:4]),
		}
	}

	hdrBuf := buf[3+fixedLen : length]
	hs, err := header.DecodeAll(hdrBuf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	p.Headers = hs
	return p, nil
}

// EncodeConnectFields packs the 4-byte connect fixed fields.
func EncodeConnectFields(majorMinor byte, flags byte, maxLen uint16) []byte {
	buf := make([]byte, 4)
	buf[0] = majorMinor
	buf[1] = flags
	wire.PutUint16(buf[2:4], maxLen)
	return buf
}

// EncodeSetPathFields packs the 2-byte setpath fixed fields. Both values
// must be passed through as the numeric flags/constants bytes they are —
// they are not strings.
func EncodeSetPathFields(flags, constants byte) []byte {
	return []byte{flags, constants}
}
