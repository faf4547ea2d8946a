package bridge

import "errors"

// Sentinel errors for classification with errors.Is.
var (
	// ErrApplication matches any *ApplicationError.
	ErrApplication = errors.New("application error")

	// ErrTransport matches any *TransportError.
	ErrTransport = errors.New("transport error")
)

// ApplicationError is a backend-reported rejection: the call was delivered
// and the backend refused it. Error() returns the backend's message
// verbatim, so it can be embedded in a conversational response unchanged.
type ApplicationError struct {
	// Capability is the invoked capability name.
	Capability string

	// Message is the backend's error message, unmodified.
	Message string
}

func (e *ApplicationError) Error() string {
	return e.Message
}

// Is reports whether this error matches ErrApplication.
func (e *ApplicationError) Is(target error) bool {
	return target == ErrApplication
}

// TransportError is a delivery failure: the backend was unreachable or its
// response could not be understood.
type TransportError struct {
	// Capability is the invoked capability name.
	Capability string

	// Message describes the failure.
	Message string

	// Err is the underlying error, if any.
	Err error
}

func (e *TransportError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
