package polyreg

import "math"

// Sinc is the unnormalized sinc function: sin(x)/x, with Sinc(0) = 1.
//
// The x = 0 branch makes the removable singularity explicit. For small
// nonzero x, sin(x)/x evaluates to 1 within one ulp, so no series
// expansion is needed.
func Sinc(x float64) float64 {
	if x == 0 {
		return 1.0
	}
	return math.Sin(x) / x
}

// Compute evaluates the regularized response at a single momentum point:
//
//	G(k²) = μ² · sinc²(μ·√k²)
//
// This is the continuous formulation: no branch is needed at k² = 0
// because sinc(0) = 1, giving G(0) = μ² exactly.
//
// Guarantees for in-domain inputs:
//   - result is finite
//   - 0 ≤ result ≤ μ² (the squared-sinc envelope)
//
// Domain:
//   - mu > 0 and finite
//   - kSquared ≥ 0 and finite
//
// Out-of-domain arguments (including NaN, which fails both ordering
// checks) return *InvalidParameterError.
func Compute(mu, kSquared float64) (float64, error) {
	if err := validateScale(mu); err != nil {
		return 0, err
	}
	if err := validateMomentum(kSquared); err != nil {
		return 0, err
	}

	s := Sinc(mu * math.Sqrt(kSquared))
	return mu * mu * s * s, nil
}

// ComputeBatch evaluates the response elementwise over a slice of momentum
// values. The result has the same length and ordering as the input, and
// each element equals Compute(mu, kSquared[i]) exactly — batch evaluation
// is mapping, not a different semantic.
//
// Validation is all-or-nothing: any out-of-domain element fails the whole
// call and no partial result is returned. A nil or empty input yields an
// empty (non-nil) result.
func ComputeBatch(mu float64, kSquared []float64) ([]float64, error) {
	if err := validateScale(mu); err != nil {
		return nil, err
	}

	out := make([]float64, len(kSquared))
	for i, k2 := range kSquared {
		if err := validateMomentum(k2); err != nil {
			return nil, err
		}
		s := Sinc(mu * math.Sqrt(k2))
		out[i] = mu * mu * s * s
	}

	return out, nil
}

// validateScale checks the polymer scale domain: μ > 0, finite.
func validateScale(mu float64) error {
	if !(mu > 0) {
		return invalidParam("mu", mu, "must be > 0")
	}
	if math.IsInf(mu, 0) {
		return invalidParam("mu", mu, "must be finite")
	}
	return nil
}

// validateMomentum checks the momentum-squared domain: k² ≥ 0, finite.
func validateMomentum(kSquared float64) error {
	if !(kSquared >= 0) {
		return invalidParam("kSquared", kSquared, "must be >= 0")
	}
	if math.IsInf(kSquared, 0) {
		return invalidParam("kSquared", kSquared, "must be finite")
	}
	return nil
}
