package wire

import "testing"

func TestUint16RoundTrip(t *testing.T) {
	buf := make([]byte, 2)
	PutUint16(buf, 0xBEEF)
	if got := Uint16(buf); got != 0xBEEF {
		t.Fatalf("got %#x, want %#x", got, 0xBEEF)
	}
}

func TestUint32RoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	PutUint32(buf, 0xCAFEBABE)
	if got := Uint32(buf); got != 0xCAFEBABE {
		t.Fatalf("got %#x, want %#x", got, 0xCAFEBABE)
	}
}

func TestUTF16BERoundTrip(t *testing.T) {
	cases := []string{"", "hello", "obex", "café"}
	for _, s := range cases {
		enc := EncodeUTF16BE(s)
		got := DecodeUTF16BE(enc)
		if got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}

func TestUTF16BEEmptyIsZeroBytes(t *testing.T) {
	if enc := EncodeUTF16BE(""); len(enc) != 0 {
		t.Fatalf("expected 0 bytes for empty string, got %d", len(enc))
	}
}

func TestUTF16BEKnownBytes(t *testing.T) {
	enc := EncodeUTF16BE("AB")
	want := []byte{0x00, 0x41, 0x00, 0x42}
	if len(enc) != len(want) {
		t.Fatalf("got %d bytes, want %d", len(enc), len(want))
	}
	for i := range want {
		if enc[i] != want[i] {
			t.Fatalf("byte %d: got %#x, want %#x", i, enc[i], want[i])
		}
	}
}
