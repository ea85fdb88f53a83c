// Package alloc provides the raw buffer allocators used by byte strings.
package alloc

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is returned when an allocator cannot satisfy a request.
var ErrOutOfMemory = errors.New("out of memory")

// ErrInvalidFree is returned when a buffer is freed that the allocator does not own.
var ErrInvalidFree = errors.New("invalid free")

// Allocator hands out raw byte buffers and takes them back.
type Allocator interface {
	// Alloc returns a buffer of exactly n bytes.
	Alloc(n int) ([]byte, error)

	// Free returns a buffer previously obtained from Alloc.
	Free(b []byte) error
}

// Kind

type Kind string

const (
	Heap   Kind = "heap"   // plain Go heap
	Budget Kind = "budget" // heap with a byte budget and live-buffer tracking
	Pool   Kind = "pool"   // budget allocator that recycles freed buffers
)

// Options

type Options struct {
	MaxBytes  int64 // budget, pool: total bytes that may be outstanding, 0 means unlimited
	MaxAlloc  int   // largest single allocation, 0 means unlimited
	PoolBytes int64 // pool: bytes of freed buffers kept for reuse
	OnRelease func(size int)
}

// NewOptions
func NewOptions() Options {
	return Options{
		MaxBytes:  64 * 1024 * 1024, // 64MB
		MaxAlloc:  0,
		PoolBytes: 1024 * 1024, // 1MB
		OnRelease: nil,
	}
}

// New picks an allocator implementation by kind.
func New(kind Kind, options Options) Allocator {
	switch kind {
	case Heap:
		return newHeapAllocator(options)
	case Budget:
		return newBudgetAllocator(options)
	case Pool:
		return newPoolAllocator(options)
	default:
		return newHeapAllocator(options)
	}
}

// ParseKind maps a configuration string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Heap, Budget, Pool:
		return Kind(s), nil
	case "":
		return Heap, nil
	default:
		return "", fmt.Errorf("unknown allocator kind %q", s)
	}
}

// Stats is implemented by allocators that keep counters.
type Stats interface {
	Stats() map[string]interface{}
}

// outOfMemory builds the error returned for a refused request.
func outOfMemory(n int, reason string) error {
	return fmt.Errorf("%w: %d bytes requested: %s", ErrOutOfMemory, n, reason)
}

// makeBuffer allocates n bytes, turning a runtime size panic into ErrOutOfMemory.
func makeBuffer(n int) (b []byte, err error) {
	if n < 0 {
		return nil, outOfMemory(n, "negative size")
	}
	defer func() {
		if r := recover(); r != nil {
			b = nil
			err = outOfMemory(n, fmt.Sprint(r))
		}
	}()
	return make([]byte, n), nil
}
