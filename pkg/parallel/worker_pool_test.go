package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	pool, err := NewWorkerPool(4)
	if err != nil {
		t.Fatalf("NewWorkerPool failed: %v", err)
	}

	var counter int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		if !pool.Submit(func() {
			defer wg.Done()
			atomic.AddInt64(&counter, 1)
		}) {
			t.Fatal("Submit returned false on open pool")
		}
	}
	wg.Wait()
	pool.Close()

	if counter != 100 {
		t.Errorf("Expected 100 executed tasks, got %d", counter)
	}
}

func TestWorkerPool_SubmitAfterClose(t *testing.T) {
	pool, err := NewWorkerPool(1)
	if err != nil {
		t.Fatalf("NewWorkerPool failed: %v", err)
	}
	pool.Close()

	if pool.Submit(func() {}) {
		t.Error("Submit should return false after Close")
	}
}

func TestWorkerPool_ZeroWorkersFallsBack(t *testing.T) {
	pool, err := NewWorkerPool(0)
	if err != nil {
		t.Fatalf("NewWorkerPool(0) failed: %v", err)
	}
	defer pool.Close()

	done := make(chan struct{})
	pool.Submit(func() { close(done) })
	<-done
}

func TestWorkerPool_PanicRecovery(t *testing.T) {
	pool, err := NewWorkerPool(2)
	if err != nil {
		t.Fatalf("NewWorkerPool failed: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	pool.Submit(func() {
		defer wg.Done()
		panic("boom")
	})
	pool.Submit(func() {
		defer wg.Done()
	})
	wg.Wait()
	pool.Close()
}

func TestForEach_CoversEveryIndex(t *testing.T) {
	seen := make([]int64, 50)
	err := ForEach(8, 50, func(i int) {
		atomic.AddInt64(&seen[i], 1)
	})
	if err != nil {
		t.Fatalf("ForEach failed: %v", err)
	}

	for i, n := range seen {
		if n != 1 {
			t.Errorf("Index %d ran %d times, want 1", i, n)
		}
	}
}
