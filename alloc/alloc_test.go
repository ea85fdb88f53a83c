package alloc

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	opts := NewOptions()

	if _, ok := New(Heap, opts).(*heapAllocator); !ok {
		t.Error("New(Heap) should return a heap allocator")
	}
	if _, ok := New(Budget, opts).(*budgetAllocator); !ok {
		t.Error("New(Budget) should return a budget allocator")
	}
	if _, ok := New(Pool, opts).(*poolAllocator); !ok {
		t.Error("New(Pool) should return a pool allocator")
	}
	if _, ok := New("unknown", opts).(*heapAllocator); !ok {
		t.Error("New with an unknown kind should fall back to the heap allocator")
	}
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"heap", "budget", "pool"} {
		k, err := ParseKind(s)
		if err != nil {
			t.Fatalf("ParseKind(%q) failed: %v", s, err)
		}
		if string(k) != s {
			t.Errorf("ParseKind(%q) = %q", s, k)
		}
	}
	if k, err := ParseKind(""); err != nil || k != Heap {
		t.Errorf("ParseKind(\"\") = %q, %v, want heap", k, err)
	}
	if _, err := ParseKind("arena"); err == nil {
		t.Error("ParseKind should reject unknown kinds")
	}
}

func TestHeapAllocator_MaxAlloc(t *testing.T) {
	h := newHeapAllocator(Options{MaxAlloc: 8})

	b, err := h.Alloc(8)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	if len(b) != 8 {
		t.Errorf("Expected 8 bytes, got %d", len(b))
	}

	if _, err := h.Alloc(9); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("Expected ErrOutOfMemory, got %v", err)
	}
	if _, err := h.Alloc(-1); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("Expected ErrOutOfMemory for negative size, got %v", err)
	}
	if err := h.Free(b); err != nil {
		t.Errorf("Free failed: %v", err)
	}

	stats := h.Stats()
	if stats["allocs"].(int64) != 1 || stats["frees"].(int64) != 1 || stats["failures"].(int64) != 2 {
		t.Errorf("unexpected stats: %v", stats)
	}
}

func TestBudgetAllocator_Budget(t *testing.T) {
	a := newBudgetAllocator(Options{MaxBytes: 10})

	b1, err := a.Alloc(6)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	if _, err := a.Alloc(5); !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("Expected ErrOutOfMemory over budget, got %v", err)
	}
	b2, err := a.Alloc(4)
	if err != nil {
		t.Fatalf("Alloc within budget failed: %v", err)
	}
	if a.InUse() != 10 || a.Live() != 2 {
		t.Errorf("InUse=%d Live=%d, want 10 and 2", a.InUse(), a.Live())
	}

	if err := a.Free(b1); err != nil {
		t.Fatalf("Free failed: %v", err)
	}
	if _, err := a.Alloc(5); err != nil {
		t.Errorf("Alloc after Free should succeed: %v", err)
	}
	if err := a.Free(b2); err != nil {
		t.Fatalf("Free failed: %v", err)
	}
}

func TestBudgetAllocator_DoubleFree(t *testing.T) {
	a := newBudgetAllocator(Options{})

	b, err := a.Alloc(4)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	if err := a.Free(b); err != nil {
		t.Fatalf("first Free failed: %v", err)
	}
	if err := a.Free(b); !errors.Is(err, ErrInvalidFree) {
		t.Errorf("Expected ErrInvalidFree on double free, got %v", err)
	}
	if err := a.Free(make([]byte, 4)); !errors.Is(err, ErrInvalidFree) {
		t.Errorf("Expected ErrInvalidFree for foreign buffer, got %v", err)
	}
	if a.InUse() != 0 || a.Live() != 0 {
		t.Errorf("InUse=%d Live=%d after free, want 0", a.InUse(), a.Live())
	}
}

func TestBudgetAllocator_OnRelease(t *testing.T) {
	var released int
	a := newBudgetAllocator(Options{OnRelease: func(size int) { released += size }})

	b, _ := a.Alloc(3)
	c, _ := a.Alloc(7)
	a.Free(b)
	a.Free(c)

	if released != 10 {
		t.Errorf("Expected 10 released bytes, got %d", released)
	}
}

func TestPoolAllocator_Reuse(t *testing.T) {
	p := newPoolAllocator(Options{PoolBytes: 64})

	b, err := p.Alloc(16)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	b[0] = 'x'
	first := &b[0]
	if err := p.Free(b); err != nil {
		t.Fatalf("Free failed: %v", err)
	}
	if p.Pooled() != 16 {
		t.Errorf("Expected 16 pooled bytes, got %d", p.Pooled())
	}

	c, err := p.Alloc(16)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	if &c[0] != first {
		t.Error("Expected the pooled buffer to be reused")
	}
	if c[0] != 0 {
		t.Error("Reused buffer should be zeroed")
	}
	if p.Pooled() != 0 {
		t.Errorf("Expected empty pool, got %d bytes", p.Pooled())
	}

	stats := p.Stats()
	if stats["hits"].(int64) != 1 || stats["misses"].(int64) != 1 {
		t.Errorf("unexpected stats: %v", stats)
	}
	if err := p.Free(c); err != nil {
		t.Fatalf("Free failed: %v", err)
	}
	if err := p.Free(c); !errors.Is(err, ErrInvalidFree) {
		t.Errorf("Expected ErrInvalidFree on double free, got %v", err)
	}
}

func TestPoolAllocator_Eviction(t *testing.T) {
	var released []int
	p := newPoolAllocator(Options{
		PoolBytes: 20,
		OnRelease: func(size int) { released = append(released, size) },
	})

	a, _ := p.Alloc(8)
	b, _ := p.Alloc(8)
	c, _ := p.Alloc(8)
	p.Free(a)
	p.Free(b)
	p.Free(c)

	if p.Pooled() != 16 {
		t.Errorf("Expected 16 pooled bytes, got %d", p.Pooled())
	}
	if len(released) != 1 || released[0] != 8 {
		t.Errorf("Expected one 8 byte eviction, got %v", released)
	}

	big, _ := p.Alloc(32)
	p.Free(big)
	if p.Pooled() != 16 {
		t.Errorf("Buffers larger than the pool should not be kept, pooled=%d", p.Pooled())
	}

	p.Purge()
	if p.Pooled() != 0 {
		t.Errorf("Expected empty pool after Purge, got %d", p.Pooled())
	}
	if p.InUse() != 0 || p.Live() != 0 {
		t.Errorf("InUse=%d Live=%d, want 0", p.InUse(), p.Live())
	}
}

func TestPoolAllocator_Budget(t *testing.T) {
	p := newPoolAllocator(Options{MaxBytes: 8, PoolBytes: 64})

	b, err := p.Alloc(8)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	if _, err := p.Alloc(1); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("Expected ErrOutOfMemory over budget, got %v", err)
	}
	p.Free(b)
	if _, err := p.Alloc(8); err != nil {
		t.Errorf("Alloc after Free should succeed: %v", err)
	}
}
