package member

import "errors"

var ErrMemberNotFound = errors.New("member not found")

// ValidationError carries field->tag pairs for every constraint a member
// record failed.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "member validation failed" }
