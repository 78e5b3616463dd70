package polyreg

import "fmt"

// InvalidParameterError reports an argument outside its documented domain.
// It is the only error kind the computational core produces; match it with
// errors.As to distinguish domain violations from anything a caller wraps
// around them.
type InvalidParameterError struct {
	Param      string  // Parameter name as written in the signature
	Value      float64 // Offending value
	Constraint string  // Violated domain constraint, e.g. "must be > 0"
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("polyreg: %s = %v: %s", e.Param, e.Value, e.Constraint)
}

// invalidParam builds the error for a single out-of-domain argument.
func invalidParam(param string, value float64, constraint string) *InvalidParameterError {
	return &InvalidParameterError{Param: param, Value: value, Constraint: constraint}
}
