// Package cache provides a keyed pool of idle resources with LRU eviction.
//
// # Pool[K, V]
//
// A Pool holds values that are not in use, several per key. Take hands out
// the most recently returned value for a key; Put returns one. When the pool
// holds more values than its capacity, the least recently returned values
// are evicted and passed to the eviction callback.
//
//	pool := cache.NewPool[Size, *Framebuffer](8, func(k Size, fb *Framebuffer) {
//		pending = append(pending, fb)
//	})
//	pool.Put(size, fb)
//	fb, ok := pool.Take(size)
//
// # Thread Safety
//
// Pool is safe for concurrent use and must not be copied after creation.
// The eviction callback runs with the pool lock held and must not call back
// into the pool.
package cache
