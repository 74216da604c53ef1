package onap

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound reports that the remote service answered 404 for the
// requested resource. APIError unwraps to it so callers can use
// errors.Is(err, onap.ErrNotFound).
var ErrNotFound = errors.New("resource not found")

// APIError is returned when an ONAP service answers with a non-2xx code.
type APIError struct {
	Service    string
	Action     string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s][%s] response code %d: %s", e.Service, e.Action, e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// InvalidResponseError is returned when a response body cannot be decoded.
type InvalidResponseError struct {
	Service string
	Action  string
	Err     error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("[%s][%s] failed to decode response: %v", e.Service, e.Action, e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// ParameterError reports a locally detected misuse of the SDK, for
// example onboarding a VSP with no vendor attached.
type ParameterError struct {
	Message string
}

func (e *ParameterError) Error() string { return e.Message }

// StatusError reports a lifecycle operation attempted against a resource
// that is not in the state the operation requires.
type StatusError struct {
	Resource string
	Current  string
	Required string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s is in status %q, operation requires %q", e.Resource, e.Current, e.Required)
}
