package header

import (
	"errors"
	"fmt"

	"obex/wire"
)

// ErrInvalidLength is returned when a header's declared length field is
// smaller than its kind's minimum, or runs past the end of the buffer.
var ErrInvalidLength = errors.New("header: invalid header length")

// ErrUnderrun is DecodeAll's guard against a decoded extent running past
// the end of the buffer. The per-kind decoders already reject a declared
// length that overruns the buffer with ErrInvalidLength, so that is the
// error a truncated buffer produces.
var ErrUnderrun = errors.New("header: buffer underrun after last header")

// kindCodec is the Strategy-pattern interface each of the four header
// value kinds implements. codecFor selects the right one by Kind, a
// "small interface behind a factory" shape rather than one large switch.
type kindCodec interface {
	encode(h Header) []byte
	// decode reads one header starting at buf[0] (id byte included) and
	// returns the decoded Header plus the number of bytes consumed.
	decode(buf []byte) (Header, int, error)
}

func codecFor(k Kind) kindCodec {
	switch k {
	case KindUnicode:
		return unicodeCodec{}
	case KindBytes:
		return bytesCodec{}
	case KindU8:
		return u8Codec{}
	default:
		return u32Codec{}
	}
}

// unicodeCodec: id | total_len(u16) | utf16be(value) | 0x0000
type unicodeCodec struct{}

func (unicodeCodec) encode(h Header) []byte {
	body := wire.EncodeUTF16BE(h.Str)
	total := 3 + len(body) + 2
	buf := make([]byte, total)
	buf[0] = h.ID
	wire.PutUint16(buf[1:3], uint16(total))
	copy(buf[3:], body)
	// trailing 0x0000 already zero-valued by make()
	return buf
}

func (unicodeCodec) decode(buf []byte) (Header, int, error) {
	id := buf[0]
	if len(buf) < 3 {
		return Header{}, 0, fmt.Errorf("%w: truncated unicode header", ErrInvalidLength)
	}
	total := int(wire.Uint16(buf[1:3]))
	if total < 5 || total > len(buf) {
		return Header{}, 0, fmt.Errorf("%w: unicode total_len=%d", ErrInvalidLength, total)
	}
	// Payload excludes the trailing 2-byte null terminator.
	payload := buf[3 : total-2]
	h := Header{ID: id, Name: NameForID(id), Kind: KindUnicode, Str: wire.DecodeUTF16BE(payload)}
	return h, total, nil
}

// bytesCodec: id | total_len(u16) | raw_bytes
type bytesCodec struct{}

func (bytesCodec) encode(h Header) []byte {
	total := 3 + len(h.Raw)
	buf := make([]byte, total)
	buf[0] = h.ID
	wire.PutUint16(buf[1:3], uint16(total))
	copy(buf[3:], h.Raw)
	return buf
}

func (bytesCodec) decode(buf []byte) (Header, int, error) {
	id := buf[0]
	if len(buf) < 3 {
		return Header{}, 0, fmt.Errorf("%w: truncated bytes header", ErrInvalidLength)
	}
	total := int(wire.Uint16(buf[1:3]))
	if total < 3 || total > len(buf) {
		return Header{}, 0, fmt.Errorf("%w: bytes total_len=%d", ErrInvalidLength, total)
	}
	raw := make([]byte, total-3)
	copy(raw, buf[3:total])
	h := Header{ID: id, Name: NameForID(id), Kind: KindBytes, Raw: raw}
	return h, total, nil
}

// u8Codec: id | value (fixed 2 bytes, no length field)
type u8Codec struct{}

func (u8Codec) encode(h Header) []byte {
	return []byte{h.ID, h.U8}
}

func (u8Codec) decode(buf []byte) (Header, int, error) {
	if len(buf) < 2 {
		return Header{}, 0, fmt.Errorf("%w: truncated u8 header", ErrInvalidLength)
	}
	id := buf[0]
	h := Header{ID: id, Name: NameForID(id), Kind: KindU8, U8: buf[1]}
	return h, 2, nil
}

// u32Codec: id | value_be (fixed 5 bytes, no length field)
type u32Codec struct{}

func (u32Codec) encode(h Header) []byte {
	buf := make([]byte, 5)
	buf[0] = h.ID
	wire.PutUint32(buf[1:5], h.U32)
	return buf
}

func (u32Codec) decode(buf []byte) (Header, int, error) {
	if len(buf) < 5 {
		return Header{}, 0, fmt.Errorf("%w: truncated u32 header", ErrInvalidLength)
	}
	id := buf[0]
	h := Header{ID: id, Name: NameForID(id), Kind: KindU32, U32: wire.Uint32(buf[1:5])}
	return h, 5, nil
}
