package types

import "github.com/m-mizutani/goerr/v2"

// SubmissionKind distinguishes check-in and check-out submissions
type SubmissionKind string

const (
	SubmissionKindCheckIn  SubmissionKind = "check_in"
	SubmissionKindCheckOut SubmissionKind = "check_out"
)

// IsValid checks if the submission kind is valid
func (k SubmissionKind) IsValid() bool {
	switch k {
	case SubmissionKindCheckIn, SubmissionKindCheckOut:
		return true
	default:
		return false
	}
}

// String returns the string representation of the submission kind
func (k SubmissionKind) String() string {
	return string(k)
}

// ParseSubmissionKind parses a string into a SubmissionKind
func ParseSubmissionKind(s string) (SubmissionKind, error) {
	kind := SubmissionKind(s)
	if !kind.IsValid() {
		return "", goerr.New("invalid submission kind", goerr.V("kind", s))
	}
	return kind, nil
}
