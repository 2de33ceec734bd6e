package domain

import "strings"

// ValidationError carries every violated field constraint for one request,
// not just the first, so callers can surface the complete list.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Violations, "; ")
}

// Violations collects constraint failures while validating an input.
// Err returns nil when nothing was recorded.
type Violations []string

func (v *Violations) Add(msg string) {
	*v = append(*v, msg)
}

func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Violations: v}
}
