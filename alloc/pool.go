package alloc

import (
	"container/list"

	"github.com/sirupsen/logrus"
)

// poolAllocator is a budget allocator that keeps freed buffers on an LRU list
// and hands them out again for requests of the same size.
type poolAllocator struct {
	*budgetAllocator
	list        *list.List              // oldest free buffer at the front
	items       map[int][]*list.Element // size -> free buffers of that size
	poolBytes   int64
	pooledBytes int64
	hits        int64
	misses      int64
	evictions   int64
}

// poolEntry
type poolEntry struct {
	buf []byte
}

func newPoolAllocator(options Options) *poolAllocator {
	return &poolAllocator{
		budgetAllocator: newBudgetAllocator(options),
		list:            list.New(),
		items:           make(map[int][]*list.Element),
		poolBytes:       options.PoolBytes,
	}
}

// Alloc reuses a pooled buffer of size n when one exists.
func (p *poolAllocator) Alloc(n int) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.admitLocked(n); err != nil {
		return nil, err
	}
	if elems := p.items[n]; len(elems) > 0 {
		elem := elems[len(elems)-1]
		p.removeElement(elem)
		b := elem.Value.(*poolEntry).buf
		clear(b)
		p.trackLocked(b)
		p.hits++
		return b, nil
	}
	p.misses++
	return p.allocLocked(n)
}

// Free moves a live buffer onto the free list, evicting the oldest entries
// when the pool grows past its limit.
func (p *poolAllocator) Free(b []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.untrackLocked(b); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	if int64(len(b)) > p.poolBytes {
		p.release(len(b))
		return nil
	}
	elem := p.list.PushBack(&poolEntry{buf: b})
	p.items[len(b)] = append(p.items[len(b)], elem)
	p.pooledBytes += int64(len(b))
	p.evict()
	return nil
}

// evict enforces the pool size limit.
func (p *poolAllocator) evict() {
	for p.pooledBytes > p.poolBytes {
		if !p.removeOldest() {
			break
		}
	}
}

func (p *poolAllocator) removeOldest() bool {
	elem := p.list.Front()
	if elem == nil {
		return false
	}
	size := len(elem.Value.(*poolEntry).buf)
	p.removeElement(elem)
	p.evictions++
	p.release(size)
	logrus.Debugf("pool evicted %d byte buffer, %d bytes pooled", size, p.pooledBytes)
	return true
}

// removeElement unlinks a free buffer from the list and its size bucket.
func (p *poolAllocator) removeElement(elem *list.Element) {
	size := len(elem.Value.(*poolEntry).buf)
	elems := p.items[size]
	for i, e := range elems {
		if e == elem {
			elems = append(elems[:i], elems[i+1:]...)
			break
		}
	}
	if len(elems) == 0 {
		delete(p.items, size)
	} else {
		p.items[size] = elems
	}
	p.list.Remove(elem)
	p.pooledBytes -= int64(size)
}

func (p *poolAllocator) release(size int) {
	if p.onRelease != nil {
		p.onRelease(size)
	}
}

// Purge drops every pooled buffer.
func (p *poolAllocator) Purge() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.removeOldest() {
	}
}

// Pooled reports the bytes held on the free list.
func (p *poolAllocator) Pooled() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pooledBytes
}

func (p *poolAllocator) Stats() map[string]interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	stats := p.statsLocked(Pool)
	stats["pooled_bytes"] = p.pooledBytes
	stats["pool_bytes"] = p.poolBytes
	stats["hits"] = p.hits
	stats["misses"] = p.misses
	stats["evictions"] = p.evictions
	total := p.hits + p.misses
	if total > 0 {
		stats["hit_rate"] = float64(p.hits) / float64(total)
	} else {
		stats["hit_rate"] = 0.0
	}
	return stats
}
