package aurum

import (
	"errors"
	"fmt"
)

var (
	// ErrClientNotReady is returned when a Client method is called on a nil
	// or unbuilt client.
	ErrClientNotReady = errors.New("client not initialized")
	// ErrNoSession is returned by operations that require a stored session
	// when none exists.
	ErrNoSession = errors.New("no active session")
	// ErrRefreshFailed reports that the refresh call did not yield a usable
	// token. A session that hits this error has been terminated.
	ErrRefreshFailed = errors.New("token refresh failed")
	// ErrLoginFailed reports a 2xx login response missing the bearer or
	// refresh header. Nothing is persisted in that case.
	ErrLoginFailed = errors.New("login response missing token headers")
	// ErrStoreUnavailable reports that the token store could not be reached.
	// It is distinct from being logged out: the session may still exist.
	ErrStoreUnavailable = errors.New("token store unavailable")
	// ErrInvalidQuantity rejects gold quantities that are not positive
	// multiples of 0.5 grams.
	ErrInvalidQuantity = errors.New("quantity must be a positive multiple of 0.5 grams")
	// ErrInvalidRole rejects account roles other than BUYER and SELLER.
	ErrInvalidRole = errors.New("invalid account role")
)

// wrapStoreErr tags a token store failure with the ErrStoreUnavailable
// sentinel while preserving the underlying cause in the message.
func wrapStoreErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// NetworkError reports a transport-level failure: the request never produced
// an HTTP response. It is surfaced directly to the caller and never retried.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("aurum: network failure: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is returned by typed resource methods when the backend answered
// with a non-2xx status. Message carries the backend's message field when the
// response body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("aurum: backend returned status %d", e.Status)
	}
	return fmt.Sprintf("aurum: backend returned status %d: %s", e.Status, e.Message)
}
