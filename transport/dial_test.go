package transport

import (
	"net"
	"testing"
	"time"

	"obex/endpoint"
)

func TestDialPicksListeningCandidate(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			conn.Close()
		}
	}()

	candidates := []endpoint.Candidate{{Addr: "127.0.0.1:1", Priority: 1}, {Addr: ln.Addr().String(), Priority: 10}}
	sel := &endpoint.WeightedRandomSelector{}

	conn, err := Dial(sel, candidates, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	conn.Close()
}

func TestDialFallsBackPastDeadCandidate(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			conn.Close()
		}
	}()

	dead, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	deadAddr := dead.Addr().String()
	dead.Close() // closed immediately, so dialing it should fail

	candidates := []endpoint.Candidate{{Addr: ln.Addr().String(), Priority: 1}, {Addr: deadAddr, Priority: 1}}
	sel := &endpoint.RoundRobinSelector{}

	conn, err := Dial(sel, candidates, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	conn.Close()
}

func TestDialNoCandidates(t *testing.T) {
	sel := &endpoint.RoundRobinSelector{}
	if _, err := Dial(sel, nil, time.Second); err == nil {
		t.Fatal("expected error for empty candidate list")
	}
}
