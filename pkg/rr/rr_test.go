package rr_test

import (
	"sync"
	"testing"

	"poseclient/pkg/rr"
)

func TestSet_Next_SequenceAndWrap(t *testing.T) {
	s := rr.New([]string{"a", "b", "c", "d"})

	want := []string{"a", "b", "c", "d", "a", "b", "c", "d"}
	for i, w := range want {
		if got := s.Next(); got != w {
			t.Fatalf("step %d: got %q, want %q", i, got, w)
		}
	}
}

func TestSet_Next_Single(t *testing.T) {
	s := rr.New([]int{7})
	for i := 0; i < 10; i++ {
		if got := s.Next(); got != 7 {
			t.Fatalf("got %d, want 7", got)
		}
	}
}

func TestSet_Next_ParallelIsBalanced(t *testing.T) {
	s := rr.New([]int{0, 1, 2, 3})

	var mu sync.Mutex
	counts := make([]int, s.Len())
	var wg sync.WaitGroup
	for i := 0; i < 400; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := s.Next()
			mu.Lock()
			counts[n]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	for i, c := range counts {
		if c != 100 {
			t.Fatalf("member %d picked %d times, want 100", i, c)
		}
	}
}

func TestSet_Each(t *testing.T) {
	var seen []int
	rr.New([]int{1, 2, 3}).Each(func(v int) { seen = append(seen, v) })
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Fatalf("Each visited %v", seen)
	}
}

func TestNew_EmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on empty set")
		}
	}()
	rr.New[int](nil)
}
