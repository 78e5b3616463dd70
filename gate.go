package polyreg

import (
	"fmt"
	"time"
)

// SafetyGate applies margin assessment to a stream of observations.
// It classifies each reading into a zone relative to the threshold and
// holds a breached gate closed until conditions genuinely improve.
//
// Control loop:
//   - Every reading is assessed against the margin and threshold
//   - Readings within an order of magnitude of the threshold escalate zones
//   - A reading at or below the threshold closes the gate (breach)
//   - Hysteresis: reopening requires a minimum hold time AND the ratio
//     recovering past a stricter exit factor, preventing flap on noisy input
type SafetyGate struct {
	margin    float64
	threshold float64

	// Zone boundaries, as multiples of the threshold
	watchFactor  float64 // ratio ≤ watchFactor·threshold → WATCH
	dangerFactor float64 // ratio ≤ dangerFactor·threshold → CRITICAL

	// Hysteresis (prevents open/close oscillation)
	inBreach        bool          // Gate currently closed
	breachEnteredAt time.Time     // When the gate closed
	minHold         time.Duration // Minimum time to stay closed
	exitFactor      float64       // Ratio must exceed exitFactor·threshold to reopen

	// Response evaluation (CheckResponse)
	formulation     Formulation
	formulationName string

	// Action history
	checks    int64
	watches   int
	criticals int
	breaches  int
	sheds     int
	lastRatio float64
}

// GateActionType represents the gate's decision for one reading.
type GateActionType string

const (
	GateNominal  GateActionType = "NOMINAL"  // Ratio far above threshold, no action
	GateWatch    GateActionType = "WATCH"    // Margin thinning, monitor closely
	GateCritical GateActionType = "CRITICAL" // Within one order of magnitude of threshold
	GateBreach   GateActionType = "BREACH"   // Threshold not cleared, reject the operation
)

// GateAction is the gate's decision and its reasoning.
type GateAction struct {
	Type       GateActionType
	Reason     string
	Assessment SafetyAssessment
	Timestamp  time.Time
}

// NewSafetyGate creates a gate with standard zone boundaries and the
// default threshold. The margin constant must be > 0 and finite.
func NewSafetyGate(margin float64) (*SafetyGate, error) {
	return NewSafetyGateWithConfig(GateConfig{Margin: margin})
}

// NewSafetyGateWithConfig creates a gate from an explicit configuration.
// Zero-valued fields take their defaults; the filled config is validated.
func NewSafetyGateWithConfig(cfg GateConfig) (*SafetyGate, error) {
	applyGateDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Validate already confirmed the name is registered
	f, _ := LookupFormulation(cfg.Formulation)

	return &SafetyGate{
		margin:          cfg.Margin,
		threshold:       cfg.Threshold,
		watchFactor:     cfg.WatchFactor,
		dangerFactor:    cfg.DangerFactor,
		minHold:         time.Duration(cfg.MinHoldSeconds * float64(time.Second)),
		exitFactor:      cfg.ExitFactor,
		formulation:     f,
		formulationName: cfg.Formulation,
	}, nil
}

// Check assesses one observed quantity and returns the gate's decision.
// This is what gets called on every reading, request, or periodic probe.
//
// The error path is inherited from AssessWithThreshold: a non-finite
// observation is an *InvalidParameterError and does not change gate state.
func (g *SafetyGate) Check(observed float64) (GateAction, error) {
	assessment, err := AssessWithThreshold(g.margin, observed, g.threshold)
	if err != nil {
		return GateAction{}, err
	}

	now := time.Now()
	g.checks++
	g.lastRatio = assessment.Ratio

	// ========================================
	// Phase I: Breach handling with hysteresis
	// ========================================
	if g.inBreach {
		held := now.Sub(g.breachEnteredAt)

		// Reopen conditions:
		// 1. Minimum hold time elapsed (prevent rapid cycling)
		// 2. Ratio recovered well past the threshold (not just barely above)
		if held >= g.minHold && assessment.Ratio > g.exitFactor*g.threshold {
			g.inBreach = false
			// Fall through to zone classification below
		} else {
			g.sheds++
			return GateAction{
				Type: GateBreach,
				Reason: fmt.Sprintf(
					"BREACH HELD (hysteresis): ratio=%.4g\n"+
						"  Time closed: %.0f seconds\n"+
						"  Reopen needs: hold ≥ %.0f seconds AND ratio > %.4g (%.0f× threshold)\n"+
						"  Hysteresis prevents gate flapping on noisy readings",
					assessment.Ratio,
					held.Seconds(),
					g.minHold.Seconds(),
					g.exitFactor*g.threshold, g.exitFactor,
				),
				Assessment: assessment,
				Timestamp:  now,
			}, nil
		}
	}

	if !assessment.Passes {
		g.inBreach = true
		g.breachEnteredAt = now
		g.breaches++
		g.sheds++

		// How far below the threshold the margin collapsed
		shortfall := g.threshold / assessment.Ratio

		return GateAction{
			Type: GateBreach,
			Reason: fmt.Sprintf(
				"SAFETY BREACH: ratio=%.4g ≤ threshold %.4g\n"+
					"  Observed quantity consumed the margin %.3g× past the limit\n"+
					"  Gate closed; operations must be rejected\n"+
					"  Reopens after %.0f seconds AND ratio > %.4g",
				assessment.Ratio, g.threshold, shortfall,
				g.minHold.Seconds(), g.exitFactor*g.threshold,
			),
			Assessment: assessment,
			Timestamp:  now,
		}, nil
	}

	// ========================================
	// Phase II: Zone classification
	// ========================================

	// CRITICAL ZONE: threshold < ratio ≤ dangerFactor·threshold
	if assessment.Ratio <= g.dangerFactor*g.threshold {
		g.criticals++
		return GateAction{
			Type: GateCritical,
			Reason: fmt.Sprintf(
				"CRITICAL: ratio=%.4g within %.0f× of threshold %.4g\n"+
					"  Margin headroom: %.3g×\n"+
					"  One adverse reading away from breach",
				assessment.Ratio, g.dangerFactor, g.threshold,
				assessment.Ratio/g.threshold,
			),
			Assessment: assessment,
			Timestamp:  now,
		}, nil
	}

	// WATCH ZONE: dangerFactor·threshold < ratio ≤ watchFactor·threshold
	if assessment.Ratio <= g.watchFactor*g.threshold {
		g.watches++
		return GateAction{
			Type: GateWatch,
			Reason: fmt.Sprintf(
				"WATCH: ratio=%.4g above threshold but thinning\n"+
					"  Margin headroom: %.3g× (alert below %.0f×)\n"+
					"  Monitor for escalation",
				assessment.Ratio, assessment.Ratio/g.threshold, g.dangerFactor,
			),
			Assessment: assessment,
			Timestamp:  now,
		}, nil
	}

	// NOMINAL ZONE: ratio > watchFactor·threshold
	return GateAction{
		Type: GateNominal,
		Reason: fmt.Sprintf(
			"NOMINAL: ratio=%.4g (headroom %.3g× threshold)",
			assessment.Ratio, assessment.Ratio/g.threshold,
		),
		Assessment: assessment,
		Timestamp:  now,
	}, nil
}

// CheckResponse evaluates the configured response formulation at the given
// scale and momentum-squared, then runs the result through the gate as the
// observed quantity. The computed response is returned alongside the
// decision. A divergent formulation value (the excerpt form at k² = 0)
// surfaces as the same non-finite-observation error Check reports.
func (g *SafetyGate) CheckResponse(mu, kSquared float64) (float64, GateAction, error) {
	if err := validateScale(mu); err != nil {
		return 0, GateAction{}, err
	}
	if err := validateMomentum(kSquared); err != nil {
		return 0, GateAction{}, err
	}

	response := g.formulation(mu, kSquared)

	action, err := g.Check(response)
	if err != nil {
		return 0, GateAction{}, err
	}
	return response, action, nil
}

// InBreach reports whether the gate is currently closed.
func (g *SafetyGate) InBreach() bool {
	return g.inBreach
}

// GetStatistics returns gate operational stats.
func (g *SafetyGate) GetStatistics() map[string]interface{} {
	return map[string]interface{}{
		"margin":      g.margin,
		"threshold":   g.threshold,
		"formulation": g.formulationName,
		"checks":      g.checks,
		"last_ratio":  g.lastRatio,
		"in_breach":   g.inBreach,
		"watches":     g.watches,
		"criticals":   g.criticals,
		"breaches":    g.breaches,
		"sheds":       g.sheds,
	}
}

// ClassifyRatio maps a ratio to its zone and a risk level without gate
// state. Useful for one-shot reporting where hysteresis does not apply.
func ClassifyRatio(ratio, threshold float64) (GateActionType, string) {
	switch {
	case ratio <= threshold:
		return GateBreach, "CRITICAL"
	case ratio <= defaultDangerFactor*threshold:
		return GateCritical, "HIGH"
	case ratio <= defaultWatchFactor*threshold:
		return GateWatch, "MEDIUM"
	default:
		return GateNominal, "LOW"
	}
}
