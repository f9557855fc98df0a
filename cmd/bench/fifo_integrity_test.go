package main

import (
	"math/rand"
	"os"
	"strconv"
	"testing"
)

// =============================================================================
// Test Helpers
// =============================================================================

// withAllQueues runs fn once per implementation in the bench matrix as a
// subtest, optionally filtered by required features.
func withAllQueues(t *testing.T, testedFeatures []string, fn func(t *testing.T, impl Implementation)) {
	t.Helper()
	for _, impl := range getImplementations() {
		t.Run(impl.name, func(t *testing.T) {
			for _, feature := range testedFeatures {
				found := false
				for _, implFeature := range impl.features {
					if feature == implFeature {
						found = true
						break
					}
				}
				if !found {
					t.Skipf("Skipping: missing feature %q", feature)
					return
				}
			}
			fn(t, impl)
		})
	}
}

// getEnvInt reads an integer from an environment variable with a default value.
func getEnvInt(name string, defaultVal int) int {
	if v := os.Getenv(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return defaultVal
}

// Test size configuration via environment variables:
//
//	FIFO_TEST_SIZE       - element count for the ordering tests (default: 10000)
//	FIFO_TEST_CHURN_OPS  - operation count for the churn test (default: 50000)

// =============================================================================
// FIFO Integrity
// =============================================================================

func TestSequentialFIFOOrder(t *testing.T) {
	n := getEnvInt("FIFO_TEST_SIZE", 10000)
	withAllQueues(t, []string{"FIFO"}, func(t *testing.T, impl Implementation) {
		q := impl.newQueue(16)
		for i := 0; i < n; i++ {
			q.Push(i)
		}
		if got := q.Len(); got != n {
			t.Fatalf("expected %d queued, got %d", n, got)
		}
		for i := 0; i < n; i++ {
			v, ok := q.Pop()
			if !ok {
				t.Fatalf("queue empty after %d pops, expected %d", i, n)
			}
			if v != i {
				t.Fatalf("FIFO violation at %d: got %d", i, v)
			}
		}
		if _, ok := q.Pop(); ok {
			t.Fatal("pop on drained queue returned ok")
		}
	})
}

func TestInterleavedChurn(t *testing.T) {
	ops := getEnvInt("FIFO_TEST_CHURN_OPS", 50000)
	withAllQueues(t, []string{"FIFO"}, func(t *testing.T, impl Implementation) {
		rng := rand.New(rand.NewSource(42))
		q := impl.newQueue(16)
		next, expect := 0, 0
		for i := 0; i < ops; i++ {
			if q.Len() == 0 || rng.Intn(2) == 0 {
				q.Push(next)
				next++
				continue
			}
			v, ok := q.Pop()
			if !ok {
				t.Fatalf("pop failed with %d elements queued", q.Len())
			}
			if v != expect {
				t.Fatalf("FIFO violation: got %d, want %d", v, expect)
			}
			expect++
		}
		if got := q.Len(); got != next-expect {
			t.Fatalf("size drift: %d pushes, %d pops, Len()=%d", next, expect, got)
		}
	})
}

func TestDrainAndRefill(t *testing.T) {
	withAllQueues(t, []string{"FIFO"}, func(t *testing.T, impl Implementation) {
		q := impl.newQueue(16)
		for round := 0; round < 50; round++ {
			for i := 0; i < 100; i++ {
				q.Push(round*100 + i)
			}
			for i := 0; i < 100; i++ {
				v, ok := q.Pop()
				if !ok || v != round*100+i {
					t.Fatalf("round %d: got (%d, %v), want (%d, true)", round, v, ok, round*100+i)
				}
			}
		}
	})
}

func TestStorageBoundedUnderPopHeavyTraffic(t *testing.T) {
	// A queue that reclaims dead space must not let capacity track the
	// all-time push count when occupancy stays small. The shiftqueue baseline
	// intentionally fails this, hence the feature filter.
	withAllQueues(t, []string{"FIFO", "Amortized-Trimming"}, func(t *testing.T, impl Implementation) {
		q := impl.newQueue(16)
		for i := 0; i < 100000; i++ {
			q.Push(i)
			if _, ok := q.Pop(); !ok {
				t.Fatal("pop failed")
			}
		}
		if q.Cap() > 1024 {
			t.Fatalf("capacity %d after steady traffic with occupancy <= 1", q.Cap())
		}
	})
}
