package polyreg

import (
	"math"
	"testing"
)

// AssertZeroLimitContinuity verifies G(0) = μ² exactly.
//
// This is the whole point of the sinc-envelope formulation: the removable
// singularity of the ratio form is gone, and the zero-momentum value is
// the analytic limit with no branch.
func AssertZeroLimitContinuity(t *testing.T, mu float64) {
	t.Helper()

	got, err := Compute(mu, 0)
	if err != nil {
		t.Fatalf("Compute(%v, 0) failed: %v", mu, err)
	}

	want := mu * mu
	if got != want {
		t.Errorf("G(0) = %v, expected μ² = %v (continuity broken at k²=0)", got, want)
	} else {
		t.Logf("✓ G(0) = μ² = %v (continuous at the removable singularity)", want)
	}
}

// AssertEnvelope verifies 0 ≤ G(k²) ≤ μ² at every given sample point.
//
// Mathematical property:
//
//	G(k²) = μ²·sinc²(μ√k²) and sinc² ≤ 1, so μ² caps the response.
func AssertEnvelope(t *testing.T, mu float64, kSquared []float64) {
	t.Helper()

	envelope := mu * mu
	for _, k2 := range kSquared {
		g, err := Compute(mu, k2)
		if err != nil {
			t.Fatalf("Compute(%v, %v) failed: %v", mu, k2, err)
		}

		if g < 0 || g > envelope || math.IsNaN(g) || math.IsInf(g, 0) {
			t.Errorf("G(%v) = %v escapes envelope [0, %v]", k2, g, envelope)
		}
	}

	t.Logf("✓ Envelope holds: 0 ≤ G ≤ %v over %d samples", envelope, len(kSquared))
}

// AssertElementwiseConsistency verifies batch evaluation equals mapping
// the scalar function — bit-for-bit, not approximately.
func AssertElementwiseConsistency(t *testing.T, mu float64, kSquared []float64) {
	t.Helper()

	batch, err := ComputeBatch(mu, kSquared)
	if err != nil {
		t.Fatalf("ComputeBatch failed: %v", err)
	}

	if len(batch) != len(kSquared) {
		t.Fatalf("batch length %d != input length %d", len(batch), len(kSquared))
	}

	for i, k2 := range kSquared {
		scalar, err := Compute(mu, k2)
		if err != nil {
			t.Fatalf("Compute(%v, %v) failed: %v", mu, k2, err)
		}
		if batch[i] != scalar {
			t.Errorf("element %d: batch %v != scalar %v", i, batch[i], scalar)
		}
	}

	t.Logf("✓ Batch ≡ map(scalar) over %d elements", len(kSquared))
}

// AssertGatePasses verifies an observation clears the margin threshold.
func AssertGatePasses(t *testing.T, margin, observed, threshold float64) {
	t.Helper()

	sa, err := AssessWithThreshold(margin, observed, threshold)
	if err != nil {
		t.Fatalf("AssessWithThreshold(%v, %v, %v) failed: %v", margin, observed, threshold, err)
	}

	if !sa.Passes {
		t.Errorf("expected pass: ratio %.4g ≤ threshold %.4g (observed %v)",
			sa.Ratio, threshold, observed)
	} else {
		t.Logf("✓ Margin holds: ratio %.4g > threshold %.4g", sa.Ratio, threshold)
	}
}

// AssertGateFails verifies an observation does NOT clear the threshold.
func AssertGateFails(t *testing.T, margin, observed, threshold float64) {
	t.Helper()

	sa, err := AssessWithThreshold(margin, observed, threshold)
	if err != nil {
		t.Fatalf("AssessWithThreshold(%v, %v, %v) failed: %v", margin, observed, threshold, err)
	}

	if sa.Passes {
		t.Errorf("expected failure: ratio %.4g > threshold %.4g (observed %v)",
			sa.Ratio, threshold, observed)
	} else {
		t.Logf("✓ Correctly rejected: ratio %.4g ≤ threshold %.4g", sa.Ratio, threshold)
	}
}

// PrintResponseAnalysis outputs a curve analysis to the test log.
func PrintResponseAnalysis(t *testing.T, a ResponseAnalysis) {
	t.Helper()

	t.Logf("\n=== Response Curve Analysis (μ = %v) ===", a.Mu)
	t.Logf("Peak:        %.6g at k² = %.6g", a.Peak, a.PeakK2)
	t.Logf("First zero:  k² = %.6g (analytic, (π/μ)²)", a.FirstZeroK2)
	t.Logf("Lobes:       %d in sampled range", a.Lobes)
	t.Logf("Integral:    %.6g (trapezoidal)", a.Integral)

	if a.EnvelopeOK {
		t.Logf("✓ Envelope: no sample above μ² = %.6g", a.Mu*a.Mu)
	} else {
		t.Logf("✗ Envelope violated (sample above μ²)")
	}

	if a.TailBounded {
		t.Logf("✓ Tail bounded: G·k² ≤ 1 everywhere")
	} else {
		t.Logf("✗ Tail unbounded (G·k² > 1 somewhere)")
	}
}
