package sparse

import "testing"

func TestSetBasic(t *testing.T) {
	s := NewSet(16)
	if s.Contains(5) {
		t.Fatalf("empty set should not contain 5")
	}
	s.Insert(5)
	if !s.Contains(5) {
		t.Fatalf("set should contain 5 after insert")
	}
	s.Insert(5)
	if s.Len() != 1 {
		t.Fatalf("duplicate insert should not grow the set, len=%d", s.Len())
	}
	s.Insert(2)
	s.Insert(9)
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	s.Clear()
	if s.Len() != 0 || s.Contains(5) {
		t.Fatalf("clear should empty the set")
	}
}

func TestSetValuesOrder(t *testing.T) {
	s := NewSet(16)
	for _, v := range []uint32{3, 1, 4, 1, 5} {
		s.Insert(v)
	}
	want := []uint32{3, 1, 4, 5}
	got := s.Values()
	if len(got) != len(want) {
		t.Fatalf("len(values) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("values[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestEncodeDecodePair(t *testing.T) {
	cases := []struct{ nfaIndex, nfaState int }{
		{0, 0}, {1, 1}, {3, 255}, {7, 65535},
	}
	for _, c := range cases {
		pair := EncodePair(c.nfaIndex, c.nfaState)
		gotIdx, gotState := DecodePair(pair)
		if gotIdx != c.nfaIndex || gotState != c.nfaState {
			t.Errorf("EncodePair/DecodePair(%d,%d) roundtrip = (%d,%d)",
				c.nfaIndex, c.nfaState, gotIdx, gotState)
		}
	}
}
