package alloc

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Usage is implemented by allocators that track outstanding buffers.
type Usage interface {
	// InUse reports the bytes currently handed out.
	InUse() int64
	// Live reports the number of buffers currently handed out.
	Live() int
}

// budgetAllocator enforces a byte budget and remembers every buffer it hands out,
// so a buffer freed twice or never allocated here is rejected.
type budgetAllocator struct {
	mu        sync.Mutex
	maxBytes  int64
	maxAlloc  int
	usedBytes int64
	live      map[*byte]int
	onRelease func(size int)
	allocs    int64
	frees     int64
	failures  int64
}

func newBudgetAllocator(options Options) *budgetAllocator {
	return &budgetAllocator{
		maxBytes:  options.MaxBytes,
		maxAlloc:  options.MaxAlloc,
		live:      make(map[*byte]int),
		onRelease: options.OnRelease,
	}
}

func (a *budgetAllocator) Alloc(n int) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.admitLocked(n); err != nil {
		return nil, err
	}
	return a.allocLocked(n)
}

func (a *budgetAllocator) Free(b []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.untrackLocked(b); err != nil {
		return err
	}
	if a.onRelease != nil {
		a.onRelease(len(b))
	}
	return nil
}

// admitLocked checks n against the single-allocation limit and the budget.
func (a *budgetAllocator) admitLocked(n int) error {
	if n < 0 {
		a.failures++
		return outOfMemory(n, "negative size")
	}
	if a.maxAlloc > 0 && n > a.maxAlloc {
		a.failures++
		logrus.Warnf("allocation of %d bytes exceeds max alloc %d", n, a.maxAlloc)
		return outOfMemory(n, "exceeds max alloc")
	}
	if a.maxBytes > 0 && a.usedBytes+int64(n) > a.maxBytes {
		a.failures++
		logrus.Warnf("allocation of %d bytes exceeds budget, %d of %d in use", n, a.usedBytes, a.maxBytes)
		return outOfMemory(n, fmt.Sprintf("%d of %d bytes in use", a.usedBytes, a.maxBytes))
	}
	return nil
}

func (a *budgetAllocator) allocLocked(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	b, err := makeBuffer(n)
	if err != nil {
		a.failures++
		logrus.Warnf("allocation failed: %v", err)
		return nil, err
	}
	a.trackLocked(b)
	return b, nil
}

func (a *budgetAllocator) trackLocked(b []byte) {
	a.live[&b[0]] = len(b)
	a.usedBytes += int64(len(b))
	a.allocs++
}

// untrackLocked forgets a live buffer; zero-length buffers are never tracked.
func (a *budgetAllocator) untrackLocked(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	key := &b[0]
	size, ok := a.live[key]
	if !ok || size != len(b) {
		logrus.Errorf("free of %d byte buffer that is not live", len(b))
		return fmt.Errorf("%w: %d byte buffer is not live", ErrInvalidFree, len(b))
	}
	delete(a.live, key)
	a.usedBytes -= int64(size)
	a.frees++
	return nil
}

func (a *budgetAllocator) InUse() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.usedBytes
}

func (a *budgetAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// MaxBytes
func (a *budgetAllocator) MaxBytes() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.maxBytes
}

// SetMaxBytes changes the budget; buffers already handed out are kept.
func (a *budgetAllocator) SetMaxBytes(maxBytes int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.maxBytes = maxBytes
}

func (a *budgetAllocator) Stats() map[string]interface{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.statsLocked(Budget)
}

func (a *budgetAllocator) statsLocked(kind Kind) map[string]interface{} {
	return map[string]interface{}{
		"kind":       string(kind),
		"allocs":     a.allocs,
		"frees":      a.frees,
		"failures":   a.failures,
		"live":       len(a.live),
		"used_bytes": a.usedBytes,
		"max_bytes":  a.maxBytes,
	}
}
