package leaktest

import (
	"sync"
	"testing"
	"time"
)

func TestGoroutineChecker_NoLeak(t *testing.T) {
	checker := NewGoroutineChecker(t)

	// Do nothing - no goroutines leaked

	checker.Check(0)
}

func TestGoroutineChecker_WithTolerance(t *testing.T) {
	checker := NewGoroutineChecker(t)

	// Intentionally leak a small number of goroutines within tolerance
	done := make(chan struct{})
	go func() {
		<-done
	}()

	time.Sleep(20 * time.Millisecond)

	// Check with tolerance of 2 - should pass
	checker.Check(2)

	// Cleanup
	close(done)
}

func TestGoroutineChecker_CleanedUp(t *testing.T) {
	checker := NewGoroutineChecker(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(5 * time.Millisecond)
		}()
	}

	wg.Wait()
	checker.Check(0)
}
