package polyreg

import (
	"math"
	"sync"
)

// Formulation evaluates the response for pre-validated arguments.
// Implementations may assume mu > 0 and kSquared ≥ 0, both finite;
// ComputeWith performs the domain checks before dispatch.
type Formulation func(mu, kSquared float64) float64

// Built-in formulation names.
//
// Only the sinc-envelope form is continuous at k² = 0. The other two exist
// for matching output of older calculations that used the raw ratio form;
// select them explicitly, never by default.
const (
	// FormulationSincEnvelope is μ²·sinc²(μ√k²), the default. Continuous
	// everywhere, bounded by μ².
	FormulationSincEnvelope = "sinc-envelope"

	// FormulationLegacyRatio is sin²(μ√k²)/k² with an explicit k²→0 limit
	// branch returning μ². Numerically identical to the default.
	FormulationLegacyRatio = "legacy-ratio"

	// FormulationExcerpt is sinc²(μ√k²)/k². The numerator already carries
	// a 1/(μ²k²) factor, so this divides by k² twice relative to the
	// ratio form. It diverges at k² = 0 (returns +Inf) and is kept solely
	// to reproduce legacy output verbatim.
	FormulationExcerpt = "excerpt"
)

// formulationRegistry maps names to evaluators. Populated with the
// built-ins at init; callers may add their own via RegisterFormulation.
type formulationRegistry struct {
	mu    sync.RWMutex
	forms map[string]Formulation
}

func newFormulationRegistry() *formulationRegistry {
	return &formulationRegistry{
		forms: map[string]Formulation{
			FormulationSincEnvelope: sincEnvelope,
			FormulationLegacyRatio:  legacyRatio,
			FormulationExcerpt:      excerptForm,
		},
	}
}

// Register adds (or replaces) a named formulation.
func (r *formulationRegistry) Register(name string, f Formulation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forms[name] = f
}

// Lookup returns the formulation registered under name.
func (r *formulationRegistry) Lookup(name string) (Formulation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.forms[name]
	return f, ok
}

func sincEnvelope(mu, kSquared float64) float64 {
	s := Sinc(mu * math.Sqrt(kSquared))
	return mu * mu * s * s
}

func legacyRatio(mu, kSquared float64) float64 {
	if kSquared == 0 {
		return mu * mu // lim_{k²→0} sin²(μ√k²)/k² = μ²
	}
	s := math.Sin(mu * math.Sqrt(kSquared))
	return s * s / kSquared
}

func excerptForm(mu, kSquared float64) float64 {
	if kSquared == 0 {
		return math.Inf(1) // the excerpt has no limit branch; faithful divergence
	}
	s := Sinc(mu * math.Sqrt(kSquared))
	return s * s / kSquared
}

// Global registry (optional convenience).
var globalFormulations = newFormulationRegistry()

// RegisterFormulation adds a named formulation to the global registry.
// Built-in names may be shadowed; doing so affects every subsequent
// ComputeWith call in the process.
func RegisterFormulation(name string, f Formulation) {
	globalFormulations.Register(name, f)
}

// LookupFormulation returns the globally registered formulation, if any.
func LookupFormulation(name string) (Formulation, bool) {
	return globalFormulations.Lookup(name)
}

// ComputeWith evaluates the response using a named formulation after the
// same domain validation as Compute. An unregistered name is reported as
// an *InvalidParameterError on the name (Value is NaN since the parameter
// is not numeric).
//
// Note that only FormulationSincEnvelope and FormulationLegacyRatio keep
// the finite/bounded guarantees of Compute; FormulationExcerpt returns
// +Inf at k² = 0 by design.
func ComputeWith(name string, mu, kSquared float64) (float64, error) {
	if err := validateScale(mu); err != nil {
		return 0, err
	}
	if err := validateMomentum(kSquared); err != nil {
		return 0, err
	}

	f, ok := globalFormulations.Lookup(name)
	if !ok {
		return 0, &InvalidParameterError{
			Param:      "name",
			Value:      math.NaN(),
			Constraint: "unknown formulation " + name,
		}
	}

	return f(mu, kSquared), nil
}
