package payment

import (
	"errors"
	"fmt"
)

// Failure is a rejected instruction: a status code plus a human-readable reason.
// The parser and validator return it as an error value.
type Failure struct {
	Code   StatusCode
	Reason string
}

// Fail builds a Failure with a formatted reason.
func Fail(code StatusCode, format string, args ...any) *Failure {
	return &Failure{Code: code, Reason: fmt.Sprintf(format, args...)}
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Reason)
}

// AsFailure extracts a Failure from err.
// Errors that are not failures are reported as malformed input.
func AsFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Code: CodeMalformed, Reason: err.Error()}
}
