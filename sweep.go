package polyreg

import "math"

// ResponsePoint is a single sample of the response curve.
type ResponsePoint struct {
	KSquared float64 // Momentum-squared input
	Response float64 // G(k²)
}

// SweepConfig controls response-curve sampling.
type SweepConfig struct {
	MinK2  float64 // Starting momentum-squared (≥ 0)
	MaxK2  float64 // Ending momentum-squared (> MinK2)
	StepK2 float64 // Sample spacing (> 0)
}

// DefaultSweepConfig returns a range wide enough to cover several spectral
// lobes for scale parameters down to μ ≈ 0.1 (first zero at k² ≈ 987).
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		MinK2:  0.0,
		MaxK2:  5000.0,
		StepK2: 0.5,
	}
}

// ResponseAnalysis summarizes the shape of a sampled response curve.
type ResponseAnalysis struct {
	Mu          float64 // Scale parameter the curve was sampled with
	Peak        float64 // Largest sampled response
	PeakK2      float64 // Where the peak was sampled
	FirstZeroK2 float64 // First spectral zero, (π/μ)², analytic
	Lobes       int     // Spectral lobes inside the sampled range
	EnvelopeOK  bool    // True if no sample exceeds μ²
	TailBounded bool    // True if G(k²)·k² ≤ 1 at every sample
	Integral    float64 // Trapezoidal integral of G over the range
}

// SweepResponse samples the response curve over a momentum-squared range.
// The sweep is the measurement primitive; AnalyzeResponse interprets it.
func SweepResponse(mu float64, cfg SweepConfig) ([]ResponsePoint, error) {
	if err := validateScale(mu); err != nil {
		return nil, err
	}
	if err := validateSweep(cfg); err != nil {
		return nil, err
	}

	// Index the samples rather than accumulating k². The slack absorbs
	// division rounding so a non-dyadic step like 0.1 still lands the
	// endpoint.
	n := int((cfg.MaxK2-cfg.MinK2)/cfg.StepK2+1e-9) + 1
	points := make([]ResponsePoint, 0, n)

	for i := 0; i < n; i++ {
		k2 := cfg.MinK2 + float64(i)*cfg.StepK2
		s := Sinc(mu * math.Sqrt(k2))
		points = append(points, ResponsePoint{
			KSquared: k2,
			Response: mu * mu * s * s,
		})
	}

	return points, nil
}

// AnalyzeResponse sweeps the curve and verifies its structural properties:
// the μ² envelope, the bounded tail, lobe count, and the location of the
// peak. The first spectral zero is reported analytically since the exact
// zero generally falls between samples.
func AnalyzeResponse(mu float64, cfg SweepConfig) (ResponseAnalysis, error) {
	points, err := SweepResponse(mu, cfg)
	if err != nil {
		return ResponseAnalysis{}, err
	}

	analysis := ResponseAnalysis{
		Mu:          mu,
		FirstZeroK2: (math.Pi / mu) * (math.Pi / mu),
		EnvelopeOK:  true,
		TailBounded: true,
	}

	envelope := mu * mu
	// Floating-point slack on the envelope and tail checks. The math
	// guarantees ≤, the arithmetic only almost does.
	const slack = 1e-12

	// A lobe is a contiguous run of samples above this fraction of the
	// envelope, separated by near-zero troughs.
	lobeFloor := envelope * 1e-6
	inLobe := false

	for i, p := range points {
		if p.Response > analysis.Peak {
			analysis.Peak = p.Response
			analysis.PeakK2 = p.KSquared
		}

		if p.Response > envelope*(1+slack) {
			analysis.EnvelopeOK = false
		}
		if p.Response*p.KSquared > 1+slack {
			analysis.TailBounded = false
		}

		if p.Response > lobeFloor {
			if !inLobe {
				analysis.Lobes++
				inLobe = true
			}
		} else {
			inLobe = false
		}

		// Trapezoidal integration
		if i > 0 {
			prev := points[i-1]
			analysis.Integral += 0.5 * (prev.Response + p.Response) * (p.KSquared - prev.KSquared)
		}
	}

	return analysis, nil
}

// validateSweep checks the sweep range: 0 ≤ MinK2 < MaxK2, StepK2 > 0,
// all finite.
func validateSweep(cfg SweepConfig) error {
	if !(cfg.MinK2 >= 0) || math.IsInf(cfg.MinK2, 0) {
		return invalidParam("MinK2", cfg.MinK2, "must be >= 0 and finite")
	}
	if !(cfg.MaxK2 > cfg.MinK2) || math.IsInf(cfg.MaxK2, 0) {
		return invalidParam("MaxK2", cfg.MaxK2, "must be > MinK2 and finite")
	}
	if !(cfg.StepK2 > 0) || math.IsInf(cfg.StepK2, 0) {
		return invalidParam("StepK2", cfg.StepK2, "must be > 0 and finite")
	}
	return nil
}
