package models

import "fmt"

// Error codes surfaced in external error payloads. The collaborator layer
// translates these into user-facing messages; the core never renders text.
const (
	CodeInvalidDate        = "INVALID_DATE"
	CodeInvalidTime        = "INVALID_TIME"
	CodeInvalidCoordinates = "INVALID_COORDINATES"
	CodeEphemerisRange     = "EPHEMERIS_RANGE"
	CodeAscendantUndefined = "ASCENDANT_UNDEFINED"
	CodeAmbiguousTimezone  = "AMBIGUOUS_TIMEZONE"
	CodeRangeTooLarge      = "RANGE_TOO_LARGE"
	CodeCancelled          = "CANCELLED"
)

// CodedError is a core error carrying a stable machine code.
type CodedError struct {
	Code    string
	Message string
	Err     error
}

func (e *CodedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error { return e.Err }

// NewCodedError builds a coded core error.
func NewCodedError(code, msg string) *CodedError {
	return &CodedError{Code: code, Message: msg}
}

// WrapCoded attaches a code to an underlying error.
func WrapCoded(code, msg string, err error) *CodedError {
	return &CodedError{Code: code, Message: msg, Err: err}
}
