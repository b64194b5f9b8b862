package idalloc

import "testing"

func TestLocalAllocatorIncreasesStrictly(t *testing.T) {
	a := NewLocalAllocator()
	prev := uint32(0)
	for i := 0; i < 5; i++ {
		n, err := a.Next()
		if err != nil {
			t.Fatal(err)
		}
		if n <= prev {
			t.Fatalf("id %d did not increase past %d", n, prev)
		}
		prev = n
	}
}

func TestLocalAllocatorExhaustion(t *testing.T) {
	a := NewLocalAllocator()
	a.counter.Store(0xFFFFFFFF)
	if _, err := a.Next(); err != ErrExhausted {
		t.Fatalf("got %v, want ErrExhausted", err)
	}
}

func TestLocalAllocatorConcurrentUnique(t *testing.T) {
	a := NewLocalAllocator()
	const n = 200
	seen := make(chan uint32, n)
	done := make(chan struct{})
	for i := 0; i < n; i++ {
		go func() {
			id, err := a.Next()
			if err != nil {
				t.Error(err)
			}
			seen <- id
			done <- struct{}{}
		}()
	}
	for i := 0; i < n; i++ {
		<-done
	}
	close(seen)

	ids := map[uint32]bool{}
	for id := range seen {
		if ids[id] {
			t.Fatalf("duplicate id %d", id)
		}
		ids[id] = true
	}
}
