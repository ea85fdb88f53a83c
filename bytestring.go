package Byte_String

import (
	"fmt"
	"math"

	"Byte_String/alloc"

	"github.com/sirupsen/logrus"
)

// defaultAllocator backs strings created without WithAllocator.
var defaultAllocator = alloc.New(alloc.Heap, alloc.NewOptions())

// ByteString 是一个拥有自身缓冲区、以零字节结尾的可增长字节串
type ByteString struct {
	buf    []byte // capacity+1 bytes, buf[length] == 0
	length int
	alloc  alloc.Allocator
}

// Option ByteString 配置项
type Option func(*ByteString)

// WithAllocator 设置分配器
func WithAllocator(a alloc.Allocator) Option {
	return func(s *ByteString) {
		if a != nil {
			s.alloc = a
		}
	}
}

// allocateBuffer returns capacity+1 bytes with the terminator at index 0.
func allocateBuffer(a alloc.Allocator, capacity int) ([]byte, error) {
	if capacity < 0 || capacity == math.MaxInt {
		return nil, fmt.Errorf("%w: capacity %d", ErrOutOfMemory, capacity)
	}
	buf, err := a.Alloc(capacity + 1)
	if err != nil {
		return nil, err
	}
	buf[0] = 0
	return buf, nil
}

// freeBuffer hands buf back to a. A failure here means the buffer was not
// owned, which is logged rather than returned since the caller has already
// committed its new state.
func freeBuffer(a alloc.Allocator, buf []byte) {
	if buf == nil {
		return
	}
	if err := a.Free(buf); err != nil {
		logrus.Errorf("byte string buffer release failed: %v", err)
	}
}

func newEmpty(opts []Option) *ByteString {
	s := &ByteString{alloc: defaultAllocator}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New 创建空字符串
func New(opts ...Option) (*ByteString, error) {
	s := newEmpty(opts)
	buf, err := allocateBuffer(s.alloc, 0)
	if err != nil {
		return nil, err
	}
	s.buf = buf
	return s, nil
}

// FromBytes 从字节序列深拷贝创建字符串, nil 视为空
func FromBytes(b []byte, opts ...Option) (*ByteString, error) {
	s := newEmpty(opts)
	buf, err := allocateBuffer(s.alloc, len(b))
	if err != nil {
		return nil, err
	}
	copy(buf, b)
	buf[len(b)] = 0
	s.buf = buf
	s.length = len(b)
	return s, nil
}

// FromString 从 Go 字符串创建
func FromString(str string, opts ...Option) (*ByteString, error) {
	return FromBytes([]byte(str), opts...)
}

// Clone returns a deep copy with the same capacity and allocator.
func (s *ByteString) Clone() (*ByteString, error) {
	if s.buf == nil {
		return nil, ErrReleased
	}
	buf, err := allocateBuffer(s.alloc, s.Cap())
	if err != nil {
		return nil, err
	}
	copy(buf, s.buf[:s.length])
	buf[s.length] = 0
	return &ByteString{buf: buf, length: s.length, alloc: s.alloc}, nil
}

// Move transfers the buffer to a new instance and leaves s empty with a
// freshly allocated buffer. On failure s is unchanged.
func (s *ByteString) Move() (*ByteString, error) {
	if s.buf == nil {
		return nil, ErrReleased
	}
	fresh, err := allocateBuffer(s.alloc, 0)
	if err != nil {
		return nil, err
	}
	moved := &ByteString{buf: s.buf, length: s.length, alloc: s.alloc}
	s.buf = fresh
	s.length = 0
	return moved, nil
}

// Swap exchanges the contents of s and other.
func (s *ByteString) Swap(other *ByteString) {
	s.buf, other.buf = other.buf, s.buf
	s.length, other.length = other.length, s.length
	s.alloc, other.alloc = other.alloc, s.alloc
}

// Assign makes s a deep copy of other. On failure s is unchanged.
func (s *ByteString) Assign(other *ByteString) error {
	if s == other {
		return nil
	}
	if s.buf == nil {
		return ErrReleased
	}
	if other.buf == nil {
		return ErrReleased
	}
	buf, err := allocateBuffer(s.alloc, other.Cap())
	if err != nil {
		return err
	}
	copy(buf, other.buf[:other.length])
	buf[other.length] = 0
	tmp := &ByteString{buf: buf, length: other.length, alloc: s.alloc}
	s.Swap(tmp)
	tmp.discard()
	return nil
}

// MoveAssign takes ownership of other's buffer and leaves other empty.
func (s *ByteString) MoveAssign(other *ByteString) error {
	if s == other {
		return nil
	}
	if s.buf == nil || other.buf == nil {
		return ErrReleased
	}
	fresh, err := allocateBuffer(other.alloc, 0)
	if err != nil {
		return err
	}
	freeBuffer(s.alloc, s.buf)
	s.buf, s.length, s.alloc = other.buf, other.length, other.alloc
	other.buf, other.length = fresh, 0
	return nil
}

// AssignBytes replaces the contents of s with a copy of b.
func (s *ByteString) AssignBytes(b []byte) error {
	if s.buf == nil {
		return ErrReleased
	}
	tmp, err := FromBytes(b, WithAllocator(s.alloc))
	if err != nil {
		return err
	}
	s.Swap(tmp)
	tmp.discard()
	return nil
}

// AssignString replaces the contents of s with str.
func (s *ByteString) AssignString(str string) error {
	return s.AssignBytes([]byte(str))
}

// Release returns the buffer to the allocator. Releasing twice is a no-op.
func (s *ByteString) Release() error {
	if s.buf == nil {
		return nil
	}
	buf := s.buf
	s.buf = nil
	s.length = 0
	return s.alloc.Free(buf)
}

// discard releases a temporary whose state has already been swapped out.
func (s *ByteString) discard() {
	freeBuffer(s.alloc, s.buf)
	s.buf = nil
	s.length = 0
}

// Released reports whether Release has been called.
func (s *ByteString) Released() bool {
	return s.buf == nil
}

// Len 逻辑长度
func (s *ByteString) Len() int {
	return s.length
}

// Cap 容量(不含结尾零字节)
func (s *ByteString) Cap() int {
	if s.buf == nil {
		return 0
	}
	return len(s.buf) - 1
}

// IsEmpty
func (s *ByteString) IsEmpty() bool {
	return s.length == 0
}

// RawBytes returns a read-only view including the terminator.
func (s *ByteString) RawBytes() ByteView {
	if s.buf == nil {
		return ByteView{b: []byte{0}}
	}
	return ByteView{b: s.buf[:s.length+1]}
}

// Bytes returns a copy of the logical bytes.
func (s *ByteString) Bytes() []byte {
	return cloneBytes(s.buf[:s.length])
}

func (s *ByteString) String() string {
	return string(s.buf[:s.length])
}
