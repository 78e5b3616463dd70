package polyreg

import "math"

// DefaultThreshold is the documented safety-margin threshold: the ratio of
// margin constant to observed quantity must exceed 1e12 for the assessment
// to pass.
const DefaultThreshold = 1e12

// ratioEpsilon floors the denominator of the margin ratio. It is far below
// any observed quantity a caller can meaningfully produce; it only keeps
// the division defined for positive denormals. Overflow of the ratio to
// +Inf for absurdly small observations is accepted and still passes.
const ratioEpsilon = 1e-300

// SafetyAssessment is the outcome of a margin check: the dimensionless
// ratio of margin to observation, and whether it clears the threshold.
// Ratio is +Inf when the observation is zero or negative (maximal safety
// by convention: non-positive observed density cannot consume margin).
type SafetyAssessment struct {
	Ratio  float64
	Passes bool
}

// Assess compares a margin constant against an observed quantity using
// DefaultThreshold.
//
//	ratio  = marginConstant / max(observedQuantity, ε)   (observed > 0)
//	ratio  = +Inf                                        (observed ≤ 0)
//	passes = ratio > threshold
//
// Domain:
//   - marginConstant > 0 and finite
//   - observedQuantity finite (any sign)
//
// NaN or infinite arguments return *InvalidParameterError.
func Assess(marginConstant, observedQuantity float64) (SafetyAssessment, error) {
	return AssessWithThreshold(marginConstant, observedQuantity, DefaultThreshold)
}

// AssessWithThreshold is Assess with a caller-supplied threshold, which
// must itself be > 0 and finite.
func AssessWithThreshold(marginConstant, observedQuantity, threshold float64) (SafetyAssessment, error) {
	if !(marginConstant > 0) {
		return SafetyAssessment{}, invalidParam("marginConstant", marginConstant, "must be > 0")
	}
	if math.IsInf(marginConstant, 0) {
		return SafetyAssessment{}, invalidParam("marginConstant", marginConstant, "must be finite")
	}
	if math.IsNaN(observedQuantity) || math.IsInf(observedQuantity, 0) {
		return SafetyAssessment{}, invalidParam("observedQuantity", observedQuantity, "must be finite")
	}
	if !(threshold > 0) {
		return SafetyAssessment{}, invalidParam("threshold", threshold, "must be > 0")
	}
	if math.IsInf(threshold, 0) {
		return SafetyAssessment{}, invalidParam("threshold", threshold, "must be finite")
	}

	var ratio float64
	if observedQuantity <= 0 {
		ratio = math.Inf(1)
	} else {
		ratio = marginConstant / math.Max(observedQuantity, ratioEpsilon)
	}

	return SafetyAssessment{
		Ratio:  ratio,
		Passes: ratio > threshold,
	}, nil
}
