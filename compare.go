package Byte_String

import (
	"fmt"
	"math"
)

// asciiRange bounds the byte values tracked by UniqueCharsWith.
const asciiRange = 128

// Equal reports whether s and other hold the same bytes.
func (s *ByteString) Equal(other *ByteString) bool {
	if s.length != other.length {
		return false
	}
	for i := 0; i < s.length; i++ {
		if s.buf[i] != other.buf[i] {
			return false
		}
	}
	return true
}

// NotEqual
func (s *ByteString) NotEqual(other *ByteString) bool {
	return !s.Equal(other)
}

// Compare orders s and other byte by byte as unsigned values; a proper prefix
// sorts first. It returns -1, 0 or 1.
func (s *ByteString) Compare(other *ByteString) int {
	n := s.length
	if other.length < n {
		n = other.length
	}
	for i := 0; i < n; i++ {
		a, b := s.buf[i], other.buf[i]
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	switch {
	case s.length == other.length:
		return 0
	case s.length < other.length:
		return -1
	default:
		return 1
	}
}

// Less
func (s *ByteString) Less(other *ByteString) bool {
	return s.Compare(other) < 0
}

// Greater
func (s *ByteString) Greater(other *ByteString) bool {
	return s.Compare(other) > 0
}

// presence marks which ASCII values occur in b; bytes >= 128 are ignored.
func presence(b []byte) (set [asciiRange]bool) {
	for _, c := range b {
		if c < asciiRange {
			set[c] = true
		}
	}
	return set
}

// UniqueCharsWith returns every occurrence of an ASCII byte of s that never
// appears in other, followed by every occurrence of an ASCII byte of other
// that never appears in s. Order and repeats are kept; bytes >= 128 are
// dropped.
func (s *ByteString) UniqueCharsWith(other *ByteString) (*ByteString, error) {
	if s.buf == nil || other.buf == nil {
		return nil, ErrReleased
	}
	inSelf := presence(s.buf[:s.length])
	inOther := presence(other.buf[:other.length])

	if other.length > math.MaxInt-1-s.length {
		return nil, fmt.Errorf("%w: length %d + %d overflows", ErrOutOfMemory, s.length, other.length)
	}
	buf, err := allocateBuffer(s.alloc, s.length+other.length)
	if err != nil {
		return nil, err
	}
	pos := 0
	for _, c := range s.buf[:s.length] {
		if c < asciiRange && !inOther[c] {
			buf[pos] = c
			pos++
		}
	}
	for _, c := range other.buf[:other.length] {
		if c < asciiRange && !inSelf[c] {
			buf[pos] = c
			pos++
		}
	}
	buf[pos] = 0
	return &ByteString{buf: buf, length: pos, alloc: s.alloc}, nil
}
