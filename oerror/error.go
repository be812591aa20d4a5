package oerror

import "fmt"

type OomphError struct {
	Err string
}

// New formats a message and wraps it into an *OomphError.
func New(format string, args ...any) *OomphError {
	if len(args) == 0 {
		return &OomphError{Err: format}
	}
	return &OomphError{Err: fmt.Sprintf(format, args...)}
}

func (e *OomphError) Error() string {
	return e.Err
}
