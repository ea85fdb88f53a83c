package Byte_String

import (
	"errors"
	"testing"
)

func TestAtBounds(t *testing.T) {
	s := mustFromString(t, "apple")

	for _, i := range []int{s.Len(), s.Len() + 1, 100, -1} {
		if _, err := s.At(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("At(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
		if _, err := s.ByteAt(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("ByteAt(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
		if err := s.SetAt(i, 'x'); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SetAt(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
	if s.String() != "apple" {
		t.Fatalf("failed access changed the string: %s", s)
	}

	c, err := s.ByteAt(4)
	if err != nil || c != 'e' {
		t.Fatalf("ByteAt(4) = %q, %v", c, err)
	}

	e, _ := New()
	if _, err := e.At(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("At(0) on empty string: expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestReserve(t *testing.T) {
	s := mustFromString(t, "abc")

	if err := s.Reserve(2); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	if s.Cap() != 3 {
		t.Fatalf("Reserve below capacity should be a no-op, cap=%d", s.Cap())
	}

	if err := s.Reserve(10); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	if s.Cap() != 10 || s.Len() != 3 || s.String() != "abc" {
		t.Fatalf("unexpected state after Reserve: %q len=%d cap=%d", s, s.Len(), s.Cap())
	}
	checkInvariants(t, s)
}

func TestPushBackGrowth(t *testing.T) {
	s, _ := New()
	want := make([]byte, 0, 100)
	caps := map[int]bool{}

	for i := 0; i < 100; i++ {
		c := byte('A' + i%26)
		if err := s.PushBack(c); err != nil {
			t.Fatalf("PushBack failed: %v", err)
		}
		want = append(want, c)
		caps[s.Cap()] = true
		checkInvariants(t, s)
	}
	if s.Len() != 100 || s.String() != string(want) {
		t.Fatalf("unexpected content after 100 PushBack: len=%d", s.Len())
	}
	for _, c := range []int{1, 2, 4, 8, 16, 32, 64, 128} {
		if !caps[c] {
			t.Errorf("expected doubling to pass through capacity %d, saw %v", c, caps)
		}
	}
}

func TestClear(t *testing.T) {
	s := mustFromString(t, "ABCDEFGHIDEF")
	capBefore := s.Cap()

	s.Clear()
	if s.Len() != 0 || !s.IsEmpty() {
		t.Fatalf("Clear left length %d", s.Len())
	}
	if s.Cap() != capBefore {
		t.Fatalf("Clear changed capacity from %d to %d", capBefore, s.Cap())
	}
	if raw := s.RawBytes().CBytes(); len(raw) != 1 || raw[0] != 0 {
		t.Fatalf("raw bytes after Clear = %v", raw)
	}
	checkInvariants(t, s)
}

func TestAppend(t *testing.T) {
	a := mustFromString(t, "ABC")
	b := mustFromString(t, "DEF")

	if err := a.Append(b); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if a.String() != "ABCDEF" {
		t.Fatalf("unexpected value: %s", a)
	}
	if a.Cap() != 6 {
		t.Errorf("capacity after doubling from 3 = %d, want 6", a.Cap())
	}

	if err := a.AppendString("GHI"); err != nil {
		t.Fatalf("AppendString failed: %v", err)
	}
	if a.String() != "ABCDEFGHI" {
		t.Fatalf("unexpected value: %s", a)
	}
	if a.Cap() != 12 {
		t.Errorf("capacity after doubling from 6 = %d, want 12", a.Cap())
	}
	if b.String() != "DEF" {
		t.Fatalf("Append modified its operand: %s", b)
	}

	if err := a.AppendBytes(nil); err != nil {
		t.Fatalf("AppendBytes(nil) failed: %v", err)
	}
	if a.String() != "ABCDEFGHI" {
		t.Fatalf("appending nothing changed the value: %s", a)
	}
	checkInvariants(t, a)
}

func TestAppendLargeJump(t *testing.T) {
	s := mustFromString(t, "a")
	if err := s.AppendString("0123456789"); err != nil {
		t.Fatalf("AppendString failed: %v", err)
	}
	// 1 -> 2 -> 4 -> 8 -> 16
	if s.Cap() != 16 {
		t.Errorf("capacity = %d, want 16", s.Cap())
	}
	if s.String() != "a0123456789" {
		t.Fatalf("unexpected value: %s", s)
	}
}

func TestAppendSelf(t *testing.T) {
	s := mustFromString(t, "abc")
	if err := s.Append(s); err != nil {
		t.Fatalf("Append(self) failed: %v", err)
	}
	if s.String() != "abcabc" {
		t.Fatalf("unexpected value: %s", s)
	}
	checkInvariants(t, s)
}

func TestConcat(t *testing.T) {
	a := mustFromString(t, "ABCDEFGHI")
	b := mustFromString(t, "DEF")

	c, err := Concat(a, b)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	if c.String() != "ABCDEFGHIDEF" {
		t.Fatalf("unexpected value: %s", c)
	}
	if c.Len() != a.Len()+b.Len() || c.Cap() != c.Len() {
		t.Fatalf("len=%d cap=%d, want %d", c.Len(), c.Cap(), a.Len()+b.Len())
	}
	if a.String() != "ABCDEFGHI" || b.String() != "DEF" {
		t.Fatalf("Concat modified its operands: a=%q b=%q", a, b)
	}
	if &c.buf[0] == &a.buf[0] || &c.buf[0] == &b.buf[0] {
		t.Fatal("Concat result aliases an operand")
	}
	checkInvariants(t, c)

	e, _ := New()
	c2, err := Concat(e, e)
	if err != nil {
		t.Fatalf("Concat of empties failed: %v", err)
	}
	if !c2.IsEmpty() {
		t.Fatalf("expected empty result, got %q", c2)
	}
	checkInvariants(t, c2)
}
