package lock

import (
	"sync"
	"testing"
)

// TestMutex_Locker verifies the collaborator satisfies sync.Locker in
// both build variants, so it can back a sync.Cond.
func TestMutex_Locker(t *testing.T) {
	var mu Mutex
	var _ sync.Locker = &mu

	cond := sync.NewCond(&mu)
	if cond == nil {
		t.Fatal("sync.NewCond rejected lock.Mutex")
	}
}

// TestMutex_MutualExclusion verifies the basic contract with an
// unsynchronized counter.
func TestMutex_MutualExclusion(t *testing.T) {
	var mu Mutex
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				mu.Lock()
				counter++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if counter != 1600 {
		t.Errorf("counter = %d, want 1600", counter)
	}
}
