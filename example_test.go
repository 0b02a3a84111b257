package lockkit_test

import (
	"fmt"
	"sync"

	"github.com/kolkov/lockkit"
)

// Example demonstrates exactly-once initialization across concurrent
// callers.
func Example() {
	var once lockkit.Once
	runs := 0

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = once.Do(func() error {
				runs++
				return nil
			})
		}()
	}
	wg.Wait()

	fmt.Println("initializer runs:", runs)

	// Output:
	// initializer runs: 1
}

// ExampleRWMutex demonstrates scoped shared and exclusive acquisition.
func ExampleRWMutex() {
	rw := lockkit.NewRWMutex()
	counts := map[string]int{}

	rw.WithLock(func() {
		counts["example.com"] = 1
	})

	var n int
	rw.WithRLock(func() {
		n = counts["example.com"]
	})

	fmt.Println("count:", n)

	// Output:
	// count: 1
}

// ExampleRecursiveMutex demonstrates re-entrant acquisition with a
// balanced release count.
func ExampleRecursiveMutex() {
	rm := lockkit.NewRecursiveMutex()

	rm.Lock()
	rm.Lock() // same goroutine: no self-deadlock
	fmt.Println("held:", rm.Held())
	rm.Unlock()
	rm.Unlock()
	fmt.Println("held:", rm.Held())

	// Output:
	// held: true
	// held: false
}

// ExampleLazy demonstrates the lazily-initialized singleton accessor.
func ExampleLazy() {
	config := lockkit.NewLazy(func() (map[string]string, error) {
		return map[string]string{"listen": ":8080"}, nil
	})

	cfg, err := config.Get()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("listen:", cfg["listen"])

	// Output:
	// listen: :8080
}
