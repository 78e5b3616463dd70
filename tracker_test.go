package polyreg

import (
	"math"
	"sync"
	"testing"
)

func TestTracker_WorstDrivesTheDecision(t *testing.T) {
	tracker := NewMarginTracker(100)

	// Quiet readings, then one spike, then quiet again
	for i := 0; i < 10; i++ {
		if err := tracker.Record(2e-14); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}
	tracker.Record(8e-12) // spike: ratio 1.25e11, below threshold
	for i := 0; i < 10; i++ {
		tracker.Record(2e-14)
	}

	if got := tracker.Worst(); got != 8e-12 {
		t.Errorf("Worst() = %v, expected the spike 8e-12", got)
	}

	sa, err := tracker.WorstRatio(1.0)
	if err != nil {
		t.Fatalf("WorstRatio failed: %v", err)
	}
	if sa.Passes {
		t.Errorf("spike should fail the margin check: ratio %.4g", sa.Ratio)
	}

	t.Logf("✓ Spike decides: worst ratio %.4g (latest reading would pass)", sa.Ratio)
}

func TestTracker_RingOverwrite(t *testing.T) {
	tracker := NewMarginTracker(4)

	// Spike first, then enough quiet readings to evict it
	tracker.Record(8e-12)
	for i := 0; i < 4; i++ {
		tracker.Record(2e-14)
	}

	if got := tracker.Worst(); got != 2e-14 {
		t.Errorf("Worst() = %v, expected evicted spike to be forgotten", got)
	}

	sa, err := tracker.WorstRatio(1.0)
	if err != nil {
		t.Fatalf("WorstRatio failed: %v", err)
	}
	if !sa.Passes {
		t.Errorf("window without the spike should pass: ratio %.4g", sa.Ratio)
	}

	t.Logf("✓ Ring buffer: spike aged out after %d writes", 4)
}

func TestTracker_Percentiles(t *testing.T) {
	tracker := NewMarginTracker(100)

	// 1..100 in scrambled insertion order shouldn't matter
	for i := 100; i >= 1; i-- {
		tracker.Record(float64(i))
	}

	if p50 := tracker.P50(); p50 < 49 || p50 > 52 {
		t.Errorf("P50 = %v, expected ≈ 50", p50)
	}
	if p99 := tracker.P99(); p99 < 98 || p99 > 100 {
		t.Errorf("P99 = %v, expected ≈ 99", p99)
	}

	t.Logf("✓ Percentiles: P50=%v P99=%v over 100 samples", tracker.P50(), tracker.P99())
}

func TestTracker_EmptyWindow(t *testing.T) {
	tracker := NewMarginTracker(10)

	if tracker.Worst() != 0 {
		t.Errorf("empty Worst() = %v, expected 0", tracker.Worst())
	}

	// Empty window assesses against zero → maximal safety
	sa, err := tracker.WorstRatio(1.0)
	if err != nil {
		t.Fatalf("WorstRatio on empty window failed: %v", err)
	}
	if !math.IsInf(sa.Ratio, 1) || !sa.Passes {
		t.Errorf("empty window: got (%v, %v), expected (+Inf, true)", sa.Ratio, sa.Passes)
	}
}

func TestTracker_RejectsNonFinite(t *testing.T) {
	tracker := NewMarginTracker(10)

	if err := tracker.Record(math.NaN()); err == nil {
		t.Error("NaN observation was accepted")
	}
	if err := tracker.Record(math.Inf(1)); err == nil {
		t.Error("infinite observation was accepted")
	}

	// Rejected values must not enter the buffer
	stats, err := tracker.Stats(1.0)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.SampleCount != 0 {
		t.Errorf("rejected values entered the window: count %d", stats.SampleCount)
	}
}

func TestTracker_Stats(t *testing.T) {
	tracker := NewMarginTracker(100)
	for _, v := range []float64{1e-14, 3e-14, 2e-14} {
		tracker.Record(v)
	}

	stats, err := tracker.Stats(1.0)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.SampleCount != 3 {
		t.Errorf("SampleCount = %d, expected 3", stats.SampleCount)
	}
	if stats.Worst != 3e-14 {
		t.Errorf("Worst = %v, expected 3e-14", stats.Worst)
	}
	if !stats.Passes {
		t.Errorf("ratio %.4g should pass", stats.WorstRatio)
	}

	t.Logf("✓ Stats: count=%d worst=%v ratio=%.4g passes=%v",
		stats.SampleCount, stats.Worst, stats.WorstRatio, stats.Passes)
}

// TestTracker_ConcurrentRecord exercises the locking under parallel
// writers; the assertion is just that the count adds up and the race
// detector stays quiet.
func TestTracker_ConcurrentRecord(t *testing.T) {
	tracker := NewMarginTracker(1000)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				tracker.Record(2e-14)
				tracker.P99()
			}
		}()
	}
	wg.Wait()

	stats, err := tracker.Stats(1.0)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.SampleCount != 2000 {
		t.Errorf("SampleCount = %d, expected 2000", stats.SampleCount)
	}
}
