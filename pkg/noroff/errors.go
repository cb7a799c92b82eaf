package noroff

import "fmt"

// ErrKind classifies a failed operation so callers can pick user-facing
// copy per kind instead of one collapsed message.
type ErrKind int

const (
	// KindValidation: the request never left the client (bad input).
	KindValidation ErrKind = iota
	// KindNetwork: the request could not be delivered or the response
	// could not be read.
	KindNetwork
	// KindServer: the API answered with a non-ok status.
	KindServer
)

type RequestError struct {
	Kind   ErrKind
	Op     string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
