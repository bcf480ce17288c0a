// Package pool provides shared, type-keyed slice pools for the parser
// runtime. Buffers handed out here back the token window and the expected
// accumulators of a single parse and are returned when the parse state is
// disposed.
package pool

import (
	"reflect"
	"sync"
)

// minCap is the smallest capacity handed out. Parses over short inputs
// still get a buffer big enough that the common case never regrows.
const minCap = 64

var pools sync.Map // reflect.Type -> *sync.Pool

func poolFor[T any]() *sync.Pool {
	key := reflect.TypeOf((*T)(nil))
	if p, ok := pools.Load(key); ok {
		return p.(*sync.Pool)
	}
	p, _ := pools.LoadOrStore(key, &sync.Pool{})
	return p.(*sync.Pool)
}

// Get returns a zero-length slice with capacity at least n.
func Get[T any](n int) []T {
	if n < minCap {
		n = minCap
	}
	sp := poolFor[T]()
	if v := sp.Get(); v != nil {
		s := v.([]T)
		if cap(s) >= n {
			return s[:0]
		}
		// Too small for this caller; give it back for a smaller one.
		sp.Put(s)
	}
	return make([]T, 0, n)
}

// Put returns a slice obtained from Get. The caller must not retain any
// reference to it afterwards.
func Put[T any](s []T) {
	if cap(s) == 0 {
		return
	}
	poolFor[T]().Put(s[:0])
}
