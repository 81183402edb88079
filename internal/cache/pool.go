package cache

import "sync"

// Pool is a keyed pool of idle values with a capacity.
// When the pool holds more than capacity values, the least recently
// returned ones are evicted.
type Pool[K comparable, V any] struct {
	mu       sync.Mutex
	buckets  map[K][]*lruNode[K, V]
	order    lruList[K, V]
	capacity int
	onEvict  func(K, V)

	hits   uint64
	misses uint64
}

// NewPool creates a pool holding at most capacity idle values.
// A capacity of 0 means unlimited. onEvict may be nil.
func NewPool[K comparable, V any](capacity int, onEvict func(K, V)) *Pool[K, V] {
	return &Pool[K, V]{
		buckets:  make(map[K][]*lruNode[K, V]),
		capacity: capacity,
		onEvict:  onEvict,
	}
}

// Take removes and returns the most recently returned value for key.
// Returns (zero, false) if the pool has none.
func (p *Pool[K, V]) Take(key K) (V, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if len(bucket) == 0 {
		p.misses++
		var zero V
		return zero, false
	}
	node := bucket[len(bucket)-1]
	p.dropLast(key, bucket)
	p.order.Remove(node)
	p.hits++
	return node.value, true
}

// Put returns value to the pool under key, evicting the oldest idle values
// if the pool is over capacity.
func (p *Pool[K, V]) Put(key K, value V) {
	p.mu.Lock()
	defer p.mu.Unlock()

	node := p.order.PushFront(key, value)
	p.buckets[key] = append(p.buckets[key], node)

	for p.capacity > 0 && p.order.Len() > p.capacity {
		p.evictOldest()
	}
}

// Drain removes every idle value, passing each to f.
func (p *Pool[K, V]) Drain(f func(K, V)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for node := p.order.Oldest(); node != nil; node = p.order.Oldest() {
		p.order.Remove(node)
		if f != nil {
			f(node.key, node.value)
		}
	}
	p.order.Clear()
	p.buckets = make(map[K][]*lruNode[K, V])
}

// Len returns the number of idle values.
func (p *Pool[K, V]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.order.Len()
}

// Capacity returns the capacity of the pool.
func (p *Pool[K, V]) Capacity() int {
	return p.capacity
}

// Stats returns pool statistics.
func (p *Pool[K, V]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Len:      p.order.Len(),
		Capacity: p.capacity,
		Hits:     p.hits,
		Misses:   p.misses,
	}
}

// evictOldest removes the least recently returned value.
// Caller must hold p.mu.
func (p *Pool[K, V]) evictOldest() {
	node := p.order.Oldest()
	if node == nil {
		return
	}
	p.order.Remove(node)

	bucket := p.buckets[node.key]
	for i, n := range bucket {
		if n == node {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(p.buckets, node.key)
	} else {
		p.buckets[node.key] = bucket
	}

	if p.onEvict != nil {
		p.onEvict(node.key, node.value)
	}
}

// dropLast removes the last node of key's bucket.
// Caller must hold p.mu.
func (p *Pool[K, V]) dropLast(key K, bucket []*lruNode[K, V]) {
	bucket[len(bucket)-1] = nil
	bucket = bucket[:len(bucket)-1]
	if len(bucket) == 0 {
		delete(p.buckets, key)
		return
	}
	p.buckets[key] = bucket
}

// Stats contains pool statistics.
type Stats struct {
	// Len is the current number of idle values.
	Len int
	// Capacity is the pool capacity (0 = unlimited).
	Capacity int
	// Hits is the number of Take calls that found a value.
	Hits uint64
	// Misses is the number of Take calls that found none.
	Misses uint64
}
