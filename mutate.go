package Byte_String

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// At returns a handle to the byte at index i.
func (s *ByteString) At(i int) (*byte, error) {
	if err := s.checkIndex("At", i); err != nil {
		return nil, err
	}
	return &s.buf[i], nil
}

// ByteAt returns the byte at index i.
func (s *ByteString) ByteAt(i int) (byte, error) {
	if err := s.checkIndex("ByteAt", i); err != nil {
		return 0, err
	}
	return s.buf[i], nil
}

// SetAt overwrites the byte at index i.
func (s *ByteString) SetAt(i int, c byte) error {
	if err := s.checkIndex("SetAt", i); err != nil {
		return err
	}
	s.buf[i] = c
	return nil
}

func (s *ByteString) checkIndex(op string, i int) error {
	if i < 0 || i >= s.length {
		return fmt.Errorf("%w: ByteString.%s index %d, length %d", ErrIndexOutOfRange, op, i, s.length)
	}
	return nil
}

// Reserve grows the buffer to hold at least n bytes. It never shrinks and
// never changes the length.
func (s *ByteString) Reserve(n int) error {
	if s.buf == nil {
		return ErrReleased
	}
	if n <= s.Cap() {
		return nil
	}
	buf, err := allocateBuffer(s.alloc, n)
	if err != nil {
		return err
	}
	copy(buf, s.buf[:s.length])
	buf[s.length] = 0
	old := s.buf
	s.buf = buf
	freeBuffer(s.alloc, old)
	logrus.Debugf("byte string reserved %d bytes, length %d", n, s.length)
	return nil
}

// grow reserves room for needed bytes, doubling the capacity until it fits.
func (s *ByteString) grow(needed int) error {
	capacity := s.Cap()
	if needed <= capacity {
		return nil
	}
	newCap := capacity * 2
	if capacity == 0 {
		newCap = 1
	}
	for newCap < needed {
		if newCap > math.MaxInt/2 {
			newCap = needed
			break
		}
		newCap *= 2
	}
	return s.Reserve(newCap)
}

// PushBack appends a single byte.
func (s *ByteString) PushBack(c byte) error {
	if s.buf == nil {
		return ErrReleased
	}
	if err := s.grow(s.length + 1); err != nil {
		return err
	}
	s.buf[s.length] = c
	s.length++
	s.buf[s.length] = 0
	return nil
}

// Clear empties the string and keeps the allocation.
func (s *ByteString) Clear() {
	s.length = 0
	if s.buf != nil {
		s.buf[0] = 0
	}
}

// Append appends other's bytes to s. Appending s to itself doubles it.
func (s *ByteString) Append(other *ByteString) error {
	if other.buf == nil {
		return ErrReleased
	}
	return s.appendBytes(other.buf[:other.length])
}

// AppendBytes appends a copy of b.
func (s *ByteString) AppendBytes(b []byte) error {
	return s.appendBytes(b)
}

// AppendString appends str.
func (s *ByteString) AppendString(str string) error {
	return s.appendBytes([]byte(str))
}

func (s *ByteString) appendBytes(b []byte) error {
	if s.buf == nil {
		return ErrReleased
	}
	n := len(b)
	if n > math.MaxInt-1-s.length {
		return fmt.Errorf("%w: length %d + %d overflows", ErrOutOfMemory, s.length, n)
	}
	// b may alias s.buf; grow may replace s.buf but leaves the old bytes in b intact
	if err := s.grow(s.length + n); err != nil {
		return err
	}
	copy(s.buf[s.length:], b)
	s.length += n
	s.buf[s.length] = 0
	return nil
}

// Concat returns a new string holding a's bytes followed by b's, allocated
// from a's allocator. Neither operand is modified.
func Concat(a, b *ByteString) (*ByteString, error) {
	if a.buf == nil || b.buf == nil {
		return nil, ErrReleased
	}
	if b.length > math.MaxInt-1-a.length {
		return nil, fmt.Errorf("%w: length %d + %d overflows", ErrOutOfMemory, a.length, b.length)
	}
	n := a.length + b.length
	buf, err := allocateBuffer(a.alloc, n)
	if err != nil {
		return nil, err
	}
	copy(buf, a.buf[:a.length])
	copy(buf[a.length:], b.buf[:b.length])
	buf[n] = 0
	return &ByteString{buf: buf, length: n, alloc: a.alloc}, nil
}
