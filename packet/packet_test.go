package packet

import (
	"bytes"
	"testing"

	"obex/header"
	"obex/opcode"
)

func TestLengthProbeAndComplete(t *testing.T) {
	buf := []byte{0x80, 0x00, 0x03}
	n, ok := LengthProbe(buf)
	if !ok || n != 3 {
		t.Fatalf("got n=%d ok=%v, want 3 true", n, ok)
	}
	if !Complete(buf) {
		t.Fatal("3-byte buffer with length=3 should be complete")
	}
	if Complete(buf[:2]) {
		t.Fatal("2-byte buffer should never be complete")
	}
}

func TestMinimumPacket(t *testing.T) {
	buf := []byte{0xFF, 0x00, 0x03} // abort, no headers
	p, err := DecodeRequest(buf)
	if err != nil {
		t.Fatal(err)
	}
	if p.Length != 3 || len(p.Headers) != 0 {
		t.Fatalf("got %+v", p)
	}
}

func TestConnectRequestRoundTrip(t *testing.T) {
	target, _ := header.Bytes("Target", []byte("ABCD"))
	hdrBlob := header.Encode(target)
	fixed := EncodeConnectFields(0x10, 0x00, 0xFFFF)
	buf := EncodeRequest(byte(opcode.Connect), fixed, [][]byte{hdrBlob})

	want := []byte{0x80, 0x00, 0x0E, 0x10, 0x00, 0xFF, 0xFF, 0x46, 0x00, 0x07, 0x41, 0x42, 0x43, 0x44}
	if !bytes.Equal(buf, want) {
		t.Fatalf("got % x, want % x", buf, want)
	}

	p, err := DecodeRequest(buf)
	if err != nil {
		t.Fatal(err)
	}
	if p.Connect == nil || p.Connect.MaxLength != 0xFFFF {
		t.Fatalf("got %+v", p.Connect)
	}
	if p.Connect.MajorVersion != 1 || p.Connect.MinorVersion != 0 {
		t.Fatalf("got version %d.%d", p.Connect.MajorVersion, p.Connect.MinorVersion)
	}
	if len(p.Headers) != 1 || p.Headers[0].Name != "Target" {
		t.Fatalf("got headers %+v", p.Headers)
	}
}

func TestConnectResponseWithMaxLengthAndConnectionID(t *testing.T) {
	buf := []byte{0xA0, 0x00, 0x0C, 0x10, 0x00, 0x04, 0x00, 0xCB, 0x00, 0x00, 0x00, 0x2A}
	p, err := DecodeResponse(buf, opcode.Connect)
	if err != nil {
		t.Fatal(err)
	}
	if p.Connect.MaxLength != 1024 {
		t.Fatalf("got MaxLength=%d, want 1024", p.Connect.MaxLength)
	}
	connID, ok := header.Find(p.Headers, "ConnectionId")
	if !ok || connID.U32 != 0x2A {
		t.Fatalf("got %+v", connID)
	}
	if !p.Final {
		t.Fatal("0xA0 should be final")
	}
}

func TestGetMultiPacketResponse(t *testing.T) {
	cont := []byte{0x90, 0x00, 0x0B, 0x48, 0x00, 0x08, 0x41, 0x42, 0x43, 0x44, 0x45}
	p1, err := DecodeResponse(cont, opcode.Get)
	if err != nil {
		t.Fatal(err)
	}
	if !p1.Final || p1.Code() != opcode.Continue {
		t.Fatal("0x90 should decode as a final-bit continue response")
	}
	body, ok := header.Find(p1.Headers, "Body")
	if !ok || string(body.Raw) != "ABCDE" {
		t.Fatalf("got %+v", body)
	}

	final := []byte{0xA0, 0x00, 0x08, 0x49, 0x00, 0x05, 0x46, 0x47}
	p2, err := DecodeResponse(final, opcode.Get)
	if err != nil {
		t.Fatal(err)
	}
	if !p2.Final {
		t.Fatal("0xA0 should be final")
	}
	eob, ok := header.Find(p2.Headers, "EndOfBody")
	if !ok || string(eob.Raw) != "FG" {
		t.Fatalf("got %+v", eob)
	}
}

func TestDecodeRequestTruncatedIsNotFatal(t *testing.T) {
	buf := []byte{0x80, 0x00, 0x10, 0x10} // declares 16 bytes, only 4 present
	_, err := DecodeRequest(buf)
	if err != ErrTruncated {
		t.Fatalf("got %v, want ErrTruncated", err)
	}
}

func TestSetPathFixedFieldsPassNumericValuesThrough(t *testing.T) {
	fixed := EncodeSetPathFields(0x03, 0x00)
	buf := EncodeRequest(byte(opcode.SetPath), fixed, nil)
	p, err := DecodeRequest(buf)
	if err != nil {
		t.Fatal(err)
	}
	if p.SetPath == nil || p.SetPath.Flags != 0x03 || p.SetPath.Constants != 0x00 {
		t.Fatalf("got %+v", p.SetPath)
	}
}
