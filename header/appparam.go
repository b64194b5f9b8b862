package header

import "fmt"

// AppParam is one (tag, value) entry inside an AppParameters header's
// byte payload: a sequence of (tag: u8, length: u8, value: bytes)
// triples where length counts the whole triple, minimum 2.
type AppParam struct {
	Tag   byte
	Value []byte
}

// DecodeAppParams parses the AppParameters payload into its triples.
func DecodeAppParams(buf []byte) ([]AppParam, error) {
	var out []AppParam
	offset := 0
	for offset < len(buf) {
		if offset+2 > len(buf) {
			return nil, fmt.Errorf("%w: truncated app-parameter triple", ErrInvalidLength)
		}
		tag := buf[offset]
		length := int(buf[offset+1])
		if length < 2 {
			return nil, fmt.Errorf("%w: app-parameter length=%d below minimum 2", ErrInvalidLength, length)
		}
		if offset+length > len(buf) {
			return nil, fmt.Errorf("%w: app-parameter triple overruns buffer", ErrInvalidLength)
		}
		value := make([]byte, length-2)
		copy(value, buf[offset+2:offset+length])
		out = append(out, AppParam{Tag: tag, Value: value})
		offset += length
	}
	return out, nil
}

// EncodeAppParams serializes a sequence of app-parameter triples back
// into an AppParameters payload.
func EncodeAppParams(params []AppParam) []byte {
	var out []byte
	for _, p := range params {
		out = append(out, p.Tag, byte(len(p.Value)+2))
		out = append(out, p.Value...)
	}
	return out
}
