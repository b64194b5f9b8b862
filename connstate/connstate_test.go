package connstate

import "testing"

func TestNewIsIdle(t *testing.T) {
	c := New()
	if c.State != Idle {
		t.Fatalf("got %v, want Idle", c.State)
	}
	if c.MaxPacketLen != DefaultMaxPacketLen {
		t.Fatalf("got %d, want %d", c.MaxPacketLen, DefaultMaxPacketLen)
	}
}

func TestSetConnectionIDPreEncodes(t *testing.T) {
	c := New()
	c.SetConnectionID(0x2A)
	blob := c.ConnectionIDHeader()
	want := []byte{0xCB, 0x00, 0x00, 0x00, 0x2A}
	if len(blob) != len(want) {
		t.Fatalf("got % x", blob)
	}
	for i := range want {
		if blob[i] != want[i] {
			t.Fatalf("got % x, want % x", blob, want)
		}
	}
}

func TestResetClearsEverything(t *testing.T) {
	c := New()
	c.Connected = true
	c.MaxPacketLen = 1024
	c.SetConnectionID(1)
	c.Fail("boom")

	c.Reset()
	if c.Connected || c.MaxPacketLen != DefaultMaxPacketLen || c.ConnectionID != nil || c.ErrorMessage != "" {
		t.Fatalf("got %+v", c)
	}
}

func TestClearPreservesConnection(t *testing.T) {
	c := New()
	c.Connected = true
	c.MaxPacketLen = 1024
	c.Fail("boom")

	c.Clear()
	if c.State != Idle || c.ErrorMessage != "" {
		t.Fatalf("got state=%v err=%q", c.State, c.ErrorMessage)
	}
	if !c.Connected || c.MaxPacketLen != 1024 {
		t.Fatalf("Clear should not disturb connection-level fields: %+v", c)
	}
}

func TestEnqueueHeaders(t *testing.T) {
	rs := NewRequest(0)
	if len(rs.OutQueue) != 0 {
		t.Fatal("new request should start with an empty queue")
	}
	rs.Enqueue([]byte{0x01, 0x02})
	if len(rs.OutQueue) != 1 {
		t.Fatalf("got %d", len(rs.OutQueue))
	}
}
