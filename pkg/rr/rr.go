// Package rr hands out the members of a fixed set in round-robin order.
package rr

import "sync/atomic"

type Set[T any] struct {
	items []T
	n     atomic.Uint64
}

// New panics on an empty set; callers size their pools before building one.
func New[T any](items []T) *Set[T] {
	if len(items) == 0 {
		panic("rr: empty set")
	}
	return &Set[T]{items: items}
}

func (s *Set[T]) Next() T {
	x := s.n.Add(1)
	return s.items[(x-1)%uint64(len(s.items))]
}

func (s *Set[T]) Len() int { return len(s.items) }

func (s *Set[T]) Each(fn func(T)) {
	for _, it := range s.items {
		fn(it)
	}
}
