// Package polyreg provides polymer-regularized response calculations and
// safety-margin validation.
//
// # Overview
//
// polyreg evaluates the regularized momentum-space response
//
//	G(k²) = μ² · sinc²(μ·√k²)
//
// where μ is the polymer scale parameter and sinc is the unnormalized
// sinc function, sinc(x) = sin(x)/x with sinc(0) = 1. The sinc envelope
// removes the 1/k² singularity of the naive ratio form: G is continuous
// everywhere, bounded by μ², and G(0) = μ² exactly.
//
// On top of the response function sits a safety-margin validator that
// compares a fixed margin constant against an observed energy-density
// style quantity and gates on the ratio exceeding a threshold
// (default: 1e12).
//
// # Architecture
//
// The package components:
//
//   - response/   - Regularized response evaluation (scalar and batch)
//   - compat/     - Named alternative formulations of the response
//   - safety/     - Margin ratio assessment and thresholds
//   - gate/       - Stateful safety gate with hysteresis
//   - tracker/    - Sliding-window statistics over observed quantities
//   - sweep/      - Response curve sampling and spectral analysis
//   - scan/       - Parallel batch evaluation
//   - assertions/ - Test helpers for response and gate properties
//
// # Quick Start
//
// Evaluate the response at a single point:
//
//	g, err := polyreg.Compute(0.15, 4.0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("G(4.0) = %g\n", g) // finite, in [0, 0.0225]
//
// Feed the result into the safety validator:
//
//	sa, err := polyreg.Assess(1.0, g)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !sa.Passes {
//	    return fmt.Errorf("safety margin too thin: ratio %.3g", sa.Ratio)
//	}
//
// # The Safety Gate
//
// The SafetyGate monitors a stream of observations and applies hysteresis
// so a single good reading cannot reopen a breached gate:
//
//	gate, _ := polyreg.NewSafetyGate(1.0)
//
//	action, err := gate.Check(observed)
//	switch action.Type {
//	case polyreg.GateNominal:
//	    // Ratio far above threshold, nothing to do
//	case polyreg.GateWatch:
//	    log.Printf("WATCH: ratio %.3g approaching threshold", action.Assessment.Ratio)
//	case polyreg.GateCritical:
//	    // Within one order of magnitude of the threshold
//	case polyreg.GateBreach:
//	    // Ratio at or below threshold: reject the operation
//	    return errors.New("safety gate breached")
//	}
//
// A gate built from a GateConfig also carries a response formulation, and
// CheckResponse gates on the computed response instead of a raw reading:
//
//	response, action, err := gate.CheckResponse(mu, k2)
//
// # The Response Envelope
//
// The squared-sinc numerator caps the response at its zero-momentum value:
//
//	0 ≤ G(k²) ≤ μ²    for all k² ≥ 0
//	G(0) = μ²          (sinc(0) = 1)
//	G(k²)·k² ≤ 1       (bounded tail)
//
// Spectral zeros sit where μ·√k² is a multiple of π; the first zero is at
// k² = (π/μ)². Sweep and analyze the curve with:
//
//	analysis, err := polyreg.AnalyzeResponse(0.15, polyreg.DefaultSweepConfig())
//	fmt.Printf("peak %.4g at k²=%.4g, first zero at k²=%.4g\n",
//	    analysis.Peak, analysis.PeakK2, analysis.FirstZeroK2)
//
// # Formulations
//
// The sinc-envelope form is the default and the only formulation with the
// continuity guarantee. Two legacy formulations exist for matching older
// calculations and must be selected by name:
//
//	g, err := polyreg.ComputeWith(polyreg.FormulationLegacyRatio, mu, k2)
//
// The legacy formulations are:
//
//   - FormulationLegacyRatio: sin²(μ√k²)/k² with an explicit k²→0 branch.
//     Numerically identical to the default.
//   - FormulationExcerpt: sinc²(μ√k²)/k². Divides by k² twice and diverges
//     at k² = 0. Exists only for reproducing legacy output verbatim.
//
// # Error Handling
//
// Every out-of-domain argument returns *InvalidParameterError naming the
// parameter and the violated constraint. The library never logs, retries,
// or degrades; callers validate or catch at the boundary.
//
// # Testing
//
// Use assertions to validate response and gate properties:
//
//	func TestMyPipeline(t *testing.T) {
//	    polyreg.AssertZeroLimitContinuity(t, 0.15)
//	    polyreg.AssertEnvelope(t, 0.15, k2Samples)
//	    polyreg.AssertGatePasses(t, 1.0, observed, polyreg.DefaultThreshold)
//	}
//
// # Concurrency
//
// Compute, ComputeBatch, Assess, and the formulation evaluators are pure
// functions over immutable inputs and are safe for unsynchronized
// concurrent use. MarginTracker is safe for concurrent use. SafetyGate is
// a single-writer control-loop structure and is not synchronized.
//
// # See Also
//
//   - examples/safety-http - HTTP service gated by the safety validator
package polyreg
