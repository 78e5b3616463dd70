package polyreg

import (
	"math"
	"sort"
	"sync"
)

// MarginTracker keeps a sliding window of observed quantities and reports
// how close the worst of them comes to consuming a safety margin.
//
// THE WORST-CASE PROBLEM:
//
// A margin check against the latest reading tells you nothing about the
// spike thirty seconds ago. The gate decision has to be driven by the
// worst observation in the window, not the freshest one — a transient
// spike that cleared is still a spike that happened.
//
// Example:
//
//	tracker := NewMarginTracker(1000) // Keep last 1000 readings
//
//	tracker.Record(2.1e-14)
//	tracker.Record(1.9e-14)
//	tracker.Record(8.0e-12) // Spike
//
//	sa, _ := tracker.WorstRatio(1.0)
//	if !sa.Passes {
//	    // The spike, not the latest reading, decides the outcome
//	}
type MarginTracker struct {
	mu          sync.RWMutex
	samples     []float64 // Ring buffer of recent observations
	maxSamples  int       // Buffer size
	writeIndex  int       // Next write position
	sampleCount int64     // Total observations recorded (monotonic)

	// Cached sorted view (invalidated on write)
	sorted     []float64
	cacheValid bool
}

// NewMarginTracker creates a tracker with a fixed-size ring buffer.
// A non-positive size falls back to 1000 samples.
//
// Trade-off: larger windows remember spikes longer but also hold the gate
// hostage to stale readings.
func NewMarginTracker(maxSamples int) *MarginTracker {
	if maxSamples <= 0 {
		maxSamples = 1000
	}

	return &MarginTracker{
		samples:    make([]float64, maxSamples),
		maxSamples: maxSamples,
	}
}

// Record adds an observation to the window. Non-finite values are
// rejected with *InvalidParameterError and do not enter the buffer.
func (t *MarginTracker) Record(observed float64) error {
	if math.IsNaN(observed) || math.IsInf(observed, 0) {
		return invalidParam("observed", observed, "must be finite")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.samples[t.writeIndex] = observed
	t.writeIndex = (t.writeIndex + 1) % t.maxSamples
	t.sampleCount++
	t.cacheValid = false

	return nil
}

// Worst returns the largest observation in the window (the one that
// consumes the most margin). Zero when the window is empty.
func (t *MarginTracker) Worst() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.effectiveSampleCount()
	if n == 0 {
		return 0
	}

	worst := t.samples[0]
	for _, v := range t.samples[1:n] {
		if v > worst {
			worst = v
		}
	}
	return worst
}

// P50 returns the median observation in the window.
func (t *MarginTracker) P50() float64 {
	return t.percentile(0.50)
}

// P99 returns the 99th-percentile observation in the window.
func (t *MarginTracker) P99() float64 {
	return t.percentile(0.99)
}

// WorstRatio assesses the margin against the worst observation in the
// window, using the default threshold. An empty window assesses against
// zero, which is maximal safety (+Inf ratio) by convention.
func (t *MarginTracker) WorstRatio(margin float64) (SafetyAssessment, error) {
	return Assess(margin, t.Worst())
}

// TrackerStats is a statistical snapshot of the window.
type TrackerStats struct {
	SampleCount int64
	Worst       float64
	P50         float64
	P99         float64
	WorstRatio  float64
	Passes      bool
}

// Stats returns a snapshot of the window assessed against a margin.
func (t *MarginTracker) Stats(margin float64) (TrackerStats, error) {
	sa, err := t.WorstRatio(margin)
	if err != nil {
		return TrackerStats{}, err
	}

	t.mu.RLock()
	count := t.sampleCount
	t.mu.RUnlock()

	return TrackerStats{
		SampleCount: count,
		Worst:       t.Worst(),
		P50:         t.P50(),
		P99:         t.P99(),
		WorstRatio:  sa.Ratio,
		Passes:      sa.Passes,
	}, nil
}

// percentile calculates the p-th percentile (0 < p < 1).
func (t *MarginTracker) percentile(p float64) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.effectiveSampleCount()
	if n == 0 {
		return 0
	}

	if !t.cacheValid {
		t.sorted = append(t.sorted[:0], t.samples[:n]...)
		sort.Float64s(t.sorted)
		t.cacheValid = true
	}

	index := int(float64(n-1) * p)
	if index < 0 {
		index = 0
	}
	if index >= n {
		index = n - 1
	}

	return t.sorted[index]
}

// effectiveSampleCount returns the number of valid samples in the buffer.
func (t *MarginTracker) effectiveSampleCount() int {
	if t.sampleCount < int64(t.maxSamples) {
		return int(t.sampleCount)
	}
	return t.maxSamples
}
