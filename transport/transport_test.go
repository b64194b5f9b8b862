package transport

import (
	"bytes"
	"testing"
	"time"
)

// fakeHandle is a TransportHandle backed by an in-memory buffer — it
// does not implement deadlineSetter, exercising withDeadline's fallback
// path for handles that don't support timeouts.
type fakeHandle struct {
	r *bytes.Reader
	w bytes.Buffer
}

func (f *fakeHandle) Read(p []byte) (int, error)  { return f.r.Read(p) }
func (f *fakeHandle) Write(p []byte) (int, error) { return f.w.Write(p) }

func TestReadPacketReadsExactlyOnePacket(t *testing.T) {
	data := []byte{0x80, 0x00, 0x05, 0xAB, 0xCD, 0x90, 0x00, 0x03} // two packets back to back
	h := &fakeHandle{r: bytes.NewReader(data)}

	p1, err := ReadPacket(h)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(p1, []byte{0x80, 0x00, 0x05, 0xAB, 0xCD}) {
		t.Fatalf("got % x, want first packet only", p1)
	}

	p2, err := ReadPacket(h)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(p2, []byte{0x90, 0x00, 0x03}) {
		t.Fatalf("got % x, want second packet", p2)
	}
}

func TestReadPacketErrorsOnShortRead(t *testing.T) {
	h := &fakeHandle{r: bytes.NewReader([]byte{0x80, 0x00, 0x05, 0xAB})}
	if _, err := ReadPacket(h); err == nil {
		t.Fatal("expected an error reading a truncated packet body")
	}
}

func TestReadPacketPropagatesEOF(t *testing.T) {
	h := &fakeHandle{r: bytes.NewReader(nil)}
	_, err := ReadPacket(h)
	if err == nil {
		t.Fatal("expected an error on empty input")
	}
}

func TestWithDeadlineFallsBackWithoutDeadlineSetter(t *testing.T) {
	h := &fakeHandle{r: bytes.NewReader([]byte("x"))}
	called := false
	err := withDeadline(h, time.Now(), func() error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("expected fn to run even without deadline support")
	}
}
