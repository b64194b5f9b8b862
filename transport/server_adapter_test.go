package transport

import (
	"net"
	"testing"
	"time"

	"obex/idalloc"
	"obex/opcode"
	"obex/server"
)

func TestDriveServerReturnsRespondOnFinalBit(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	go func() {
		clientConn.Write([]byte{0x80, 0x00, 0x07, 0x10, 0x00, 0xFF, 0xFF}) // connect, no headers
	}()

	s := server.New(idalloc.NewLocalAllocator())
	action, err := DriveServer(serverConn, s, 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if action != server.ActionRespond {
		t.Fatalf("got action %v, want Respond", action)
	}

	out, err := s.Respond(opcode.OK, nil)
	if err != nil {
		t.Fatal(err)
	}
	go func() {
		buf := make([]byte, len(out))
		clientConn.Read(buf)
	}()
	if _, err := serverConn.Write(out); err != nil {
		t.Fatal(err)
	}
}

func TestDriveServerWritesContinueAckAcrossPackets(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	go func() {
		clientConn.Write([]byte{0x02, 0x00, 0x03}) // put, not final
		ack := make([]byte, 3)
		clientConn.Read(ack)
		clientConn.Write([]byte{0x82, 0x00, 0x03}) // put, final
	}()

	s := server.New(idalloc.NewLocalAllocator())
	action, err := DriveServer(serverConn, s, 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if action != server.ActionRespond {
		t.Fatalf("got action %v, want Respond", action)
	}
}
