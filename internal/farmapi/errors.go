package farmapi

import "fmt"

// ValidationError reports a client-side required-field failure. It is
// returned before any network call is made.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FetchError reports a non-2xx backend response for a list or create
// operation. Message carries the backend-provided message when the error
// body was parseable, or a generic fallback otherwise.
type FetchError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: backend returned %d: %s", e.Operation, e.StatusCode, e.Message)
}

// LookupError reports a failed user-id resolution.
type LookupError struct {
	StatusCode int
	Message    string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("user lookup: backend returned %d: %s", e.StatusCode, e.Message)
}

// NetworkError reports a request that could not complete at the transport
// level (connection refused, DNS failure, timeout).
type NetworkError struct {
	Operation string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserMessage extracts the string a view should display for err: the
// backend-provided message for fetch/lookup failures, the validation reason
// for draft failures, and the given fallback for anything else.
func UserMessage(err error, fallback string) string {
	switch e := err.(type) {
	case *ValidationError:
		return e.Err.Error()
	case *FetchError:
		return e.Message
	case *LookupError:
		return e.Message
	default:
		return fallback
	}
}
