package pool

import "testing"

func TestGetReturnsRequestedCapacity(t *testing.T) {
	s := Get[rune](1000)
	if len(s) != 0 {
		t.Errorf("len = %d, want 0", len(s))
	}
	if cap(s) < 1000 {
		t.Errorf("cap = %d, want >= 1000", cap(s))
	}
	Put(s)
}

func TestGetEnforcesMinimumCapacity(t *testing.T) {
	s := Get[byte](1)
	if cap(s) < minCap {
		t.Errorf("cap = %d, want >= %d", cap(s), minCap)
	}
	Put(s)
}

func TestPutGetRoundTrip(t *testing.T) {
	s := Get[int](256)
	s = append(s, 1, 2, 3)
	Put(s)
	// A pooled slice may come back; either way the result is empty with
	// enough room.
	s2 := Get[int](256)
	if len(s2) != 0 || cap(s2) < 256 {
		t.Errorf("got len %d cap %d", len(s2), cap(s2))
	}
}

func TestPoolsAreTypeKeyed(t *testing.T) {
	Put(append(Get[rune](64), 'x'))
	b := Get[byte](64)
	if len(b) != 0 {
		t.Errorf("byte pool returned %d elements", len(b))
	}
}
