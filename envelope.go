package aurum

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Envelope describes one outbound call: method, path relative to the base
// URL, optional query and body, caller header overrides, and whether the
// request requires authentication. Envelopes are constructed per call and
// never persisted.
type Envelope struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-marshaled when non-nil.
	Body any
	// Header entries overlay the defaults (Content-Type, User-Agent).
	Header http.Header
	// Auth marks the call as requiring a bearer token. Only Auth requests
	// participate in 401 detection and refresh.
	Auth bool
}

// Response is the outcome of a dispatched request. The body has been fully
// read and the connection released. Error statuses are ordinary responses;
// callers inspect StatusCode themselves.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Body) == 0 {
		return fmt.Errorf("aurum: empty response body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("aurum: decode response body: %w", err)
	}
	return nil
}

// apiEnvelope is the backend's response convention: a data payload plus an
// optional total for paginated listings and a message on failures.
type apiEnvelope[T any] struct {
	Data    T      `json:"data"`
	Total   *int64 `json:"total"`
	Message string `json:"message"`
}

// decodeData unwraps resp into the envelope convention, returning the data
// payload and the total (0 when absent).
func decodeData[T any](resp *Response) (T, int64, error) {
	var env apiEnvelope[T]
	if err := resp.Decode(&env); err != nil {
		var zero T
		return zero, 0, err
	}
	var total int64
	if env.Total != nil {
		total = *env.Total
	}
	return env.Data, total, nil
}

// apiError converts a non-2xx response into an *APIError, extracting the
// backend's message field when the body carries one.
func apiError(resp *Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}
	var env apiEnvelope[json.RawMessage]
	if err := json.Unmarshal(resp.Body, &env); err == nil {
		apiErr.Message = env.Message
	}
	return apiErr
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. Returns "" when the value does not follow the scheme.
func bearerToken(headerValue string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(headerValue, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(headerValue, prefix))
}
