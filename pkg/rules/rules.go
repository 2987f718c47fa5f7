package rules

import "errors"

// Violation is a domain rule failure: a requested mutation was refused and nothing changed.
// Violations are reported to the caller, never treated as fatal.
type Violation struct {
	msg string
}

// NewViolation creates a Violation with a human-readable explanation.
// Packages declare their rule failures as sentinel values built with NewViolation.
func NewViolation(msg string) *Violation {
	return &Violation{msg: msg}
}

func (v *Violation) Error() string {
	return v.msg
}

// IsViolation reports whether err (or anything it wraps) is a rule violation.
func IsViolation(err error) bool {
	var v *Violation
	return errors.As(err, &v)
}
