// Package header implements the OBEX header codec: the tagged-value
// encoding (Unicode / Bytes / U8 / U32) carried inside every OBEX packet,
// and the mnemonic name <-> identifier-byte registry.
package header

import "fmt"

// Header is a single decoded or to-be-encoded OBEX header. Exactly one of
// Str, Raw, U8, U32 is meaningful, selected by Kind.
type Header struct {
	ID   byte
	Name string
	Kind Kind
	Str  string // valid when Kind == KindUnicode
	Raw  []byte // valid when Kind == KindBytes
	U8   byte   // valid when Kind == KindU8
	U32  uint32 // valid when Kind == KindU32
}

// Unicode builds a Unicode-kind header from a known mnemonic name.
func Unicode(name, value string) (Header, error) {
	id, err := resolveKind(name, KindUnicode)
	if err != nil {
		return Header{}, err
	}
	return Header{ID: id, Name: NameForID(id), Kind: KindUnicode, Str: value}, nil
}

// Bytes builds a Bytes-kind header from a known mnemonic name.
func Bytes(name string, value []byte) (Header, error) {
	id, err := resolveKind(name, KindBytes)
	if err != nil {
		return Header{}, err
	}
	return Header{ID: id, Name: NameForID(id), Kind: KindBytes, Raw: value}, nil
}

// U8 builds a U8-kind header from a known mnemonic name.
func U8(name string, value byte) (Header, error) {
	id, err := resolveKind(name, KindU8)
	if err != nil {
		return Header{}, err
	}
	return Header{ID: id, Name: NameForID(id), Kind: KindU8, U8: value}, nil
}

// U32 builds a U32-kind header from a known mnemonic name.
func U32(name string, value uint32) (Header, error) {
	id, err := resolveKind(name, KindU32)
	if err != nil {
		return Header{}, err
	}
	return Header{ID: id, Name: NameForID(id), Kind: KindU32, U32: value}, nil
}

func resolveKind(name string, want Kind) (byte, error) {
	id, ok := lookupID(name)
	if !ok {
		return 0, fmt.Errorf("header: unknown header name %q", name)
	}
	if KindOf(id) != want {
		return 0, fmt.Errorf("header: %q is not a %v header", name, want)
	}
	return id, nil
}

// RawUnicode/RawBytes/RawU8/RawU32 build a header directly from an
// identifier byte, for ids not in the static registry (the decoded
// header's Name will be the synthetic "0xNN" form).

func RawUnicode(id byte, value string) Header {
	return Header{ID: id, Name: NameForID(id), Kind: KindUnicode, Str: value}
}

func RawBytes(id byte, value []byte) Header {
	return Header{ID: id, Name: NameForID(id), Kind: KindBytes, Raw: value}
}

func RawU8(id byte, value byte) Header {
	return Header{ID: id, Name: NameForID(id), Kind: KindU8, U8: value}
}

func RawU32(id byte, value uint32) Header {
	return Header{ID: id, Name: NameForID(id), Kind: KindU32, U32: value}
}

// Encode serializes one header to its binary form.
func Encode(h Header) []byte {
	return codecFor(h.Kind).encode(h)
}

// Decode decodes one header starting at buf[0] and returns the header
// plus the number of bytes it consumed.
func Decode(buf []byte) (Header, int, error) {
	if len(buf) == 0 {
		return Header{}, 0, fmt.Errorf("%w: empty buffer", ErrInvalidLength)
	}
	return codecFor(KindOf(buf[0])).decode(buf)
}

// DecodeAll decodes a full buffer of concatenated headers. An under-run
// (the last header's extent overshoots the buffer) is a fatal error —
// every byte of buf must belong to exactly one header.
func DecodeAll(buf []byte) ([]Header, error) {
	var out []Header
	offset := 0
	for offset < len(buf) {
		h, n, err := Decode(buf[offset:])
		if err != nil {
			return nil, err
		}
		out = append(out, h)
		offset += n
		if offset > len(buf) {
			return nil, fmt.Errorf("%w: decoded past end of buffer", ErrUnderrun)
		}
	}
	return out, nil
}

// EncodeAll concatenates the binary encoding of each header in order.
func EncodeAll(hs []Header) []byte {
	var out []byte
	for _, h := range hs {
		out = append(out, Encode(h)...)
	}
	return out
}

// Find returns the first header matching name (case-insensitive).
func Find(hs []Header, name string) (Header, bool) {
	want := lowerASCII(name)
	for _, h := range hs {
		if lowerASCII(h.Name) == want {
			return h, true
		}
	}
	return Header{}, false
}

// FindAll returns every header matching name (case-insensitive), in order.
func FindAll(hs []Header, name string) []Header {
	want := lowerASCII(name)
	var out []Header
	for _, h := range hs {
		if lowerASCII(h.Name) == want {
			out = append(out, h)
		}
	}
	return out
}

func (k Kind) String() string {
	switch k {
	case KindUnicode:
		return "Unicode"
	case KindBytes:
		return "Bytes"
	case KindU8:
		return "U8"
	case KindU32:
		return "U32"
	default:
		return "Unknown"
	}
}
