// Package wire implements the big-endian integer and UTF-16BE string
// primitives the rest of the OBEX codec is built on.
//
// Everything here is a thin, allocation-conscious layer over
// encoding/binary and unicode/utf16 — OBEX puts every multi-byte field
// on the wire in network byte order, and every Unicode header value in
// UTF-16BE, null-terminated.
package wire

import (
	"encoding/binary"
	"unicode/utf16"
)

// PutUint16 writes v into buf[0:2] big-endian.
func PutUint16(buf []byte, v uint16) {
	binary.BigEndian.PutUint16(buf, v)
}

// Uint16 reads a big-endian uint16 from buf[0:2].
func Uint16(buf []byte) uint16 {
	return binary.BigEndian.Uint16(buf)
}

// PutUint32 writes v into buf[0:4] big-endian.
func PutUint32(buf []byte, v uint32) {
	binary.BigEndian.PutUint32(buf, v)
}

// Uint32 reads a big-endian uint32 from buf[0:4].
func Uint32(buf []byte) uint32 {
	return binary.BigEndian.Uint32(buf)
}

// EncodeUTF16BE converts s to UTF-16BE bytes, WITHOUT the trailing null
// terminator — callers that need the two-byte terminator (header encoding)
// append it themselves, since not every caller wants it (e.g. length
// accounting happens before the terminator is known to be needed).
func EncodeUTF16BE(s string) []byte {
	units := utf16.Encode([]rune(s))
	buf := make([]byte, len(units)*2)
	for i, u := range units {
		binary.BigEndian.PutUint16(buf[i*2:], u)
	}
	return buf
}

// DecodeUTF16BE converts UTF-16BE bytes (an even-length slice, no
// terminator expected) back to a string.
func DecodeUTF16BE(b []byte) string {
	if len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.BigEndian.Uint16(b[i*2:])
	}
	return string(utf16.Decode(units))
}
