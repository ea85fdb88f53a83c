package Byte_String

// ByteView is a read-only view of a ByteString's buffer, terminator included.
// It is valid until the viewed string is next modified.
type ByteView struct {
	b []byte
}

// Len returns the logical length, excluding the terminator.
func (v ByteView) Len() int {
	if len(v.b) == 0 {
		return 0
	}
	return len(v.b) - 1
}

// At returns the byte at i; i == Len() yields the terminator.
func (v ByteView) At(i int) byte {
	if i == v.Len() {
		return 0
	}
	return v.b[i]
}

// ByteSlice returns a copy of the logical bytes to prevent external mutation.
func (v ByteView) ByteSlice() []byte {
	return cloneBytes(v.b[:v.Len()])
}

// CBytes returns a copy of the bytes including the terminator.
func (v ByteView) CBytes() []byte {
	if len(v.b) == 0 {
		return []byte{0}
	}
	return cloneBytes(v.b)
}

func (v ByteView) String() string {
	return string(v.b[:v.Len()])
}

// cloneBytes is a small helper used to enforce immutability.
func cloneBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
