package alloc

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// heapAllocator allocates straight from the Go heap and only counts calls.
type heapAllocator struct {
	maxAlloc  int
	onRelease func(size int)
	allocs    int64
	frees     int64
	failures  int64
}

func newHeapAllocator(options Options) *heapAllocator {
	return &heapAllocator{
		maxAlloc:  options.MaxAlloc,
		onRelease: options.OnRelease,
	}
}

func (h *heapAllocator) Alloc(n int) ([]byte, error) {
	if h.maxAlloc > 0 && n > h.maxAlloc {
		atomic.AddInt64(&h.failures, 1)
		logrus.Warnf("heap allocation of %d bytes exceeds max alloc %d", n, h.maxAlloc)
		return nil, outOfMemory(n, "exceeds max alloc")
	}
	b, err := makeBuffer(n)
	if err != nil {
		atomic.AddInt64(&h.failures, 1)
		logrus.Warnf("heap allocation failed: %v", err)
		return nil, err
	}
	atomic.AddInt64(&h.allocs, 1)
	return b, nil
}

// Free drops the reference; the garbage collector reclaims the memory.
func (h *heapAllocator) Free(b []byte) error {
	atomic.AddInt64(&h.frees, 1)
	if h.onRelease != nil {
		h.onRelease(len(b))
	}
	return nil
}

func (h *heapAllocator) Stats() map[string]interface{} {
	return map[string]interface{}{
		"kind":     string(Heap),
		"allocs":   atomic.LoadInt64(&h.allocs),
		"frees":    atomic.LoadInt64(&h.frees),
		"failures": atomic.LoadInt64(&h.failures),
	}
}
