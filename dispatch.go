package aurum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	headerAuthorization = "Authorization"
	headerRefreshToken  = "refresh-token"
	headerRequestID     = "X-Request-ID"
	headerContentType   = "Content-Type"
	headerUserAgent     = "User-Agent"

	contentTypeJSON = "application/json"
	bearerPrefix    = "Bearer "
)

// Dispatch attempt states. The single-retry bound is encoded in this
// two-step machine rather than recursion: attemptRetried never refreshes
// again, whatever the second response says.
const (
	attemptInitial = iota
	attemptRetried
)

// Do dispatches one request described by env and returns the final response.
//
// For Auth envelopes carrying a stored access token, the request is sent with
// "Authorization: Bearer <token>". A 401 response with a refresh token
// present triggers the single-flight refresh; on success the identical
// envelope is resent exactly once with the new token. The response of the
// final attempt is returned as-is — including a still-401 when refresh failed
// or the retried call was rejected again. HTTP error statuses are ordinary
// return values; only transport-level failures surface as a [*NetworkError].
func (c *Client) Do(ctx context.Context, env Envelope) (*Response, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}
	if c.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() { c.metrics.Observe(MetricDispatchLatency, time.Since(start)) }()
	}

	var body []byte
	if env.Body != nil {
		var err error
		body, err = json.Marshal(env.Body)
		if err != nil {
			return nil, fmt.Errorf("aurum: encode request body: %w", err)
		}
	}

	var accessToken, refreshToken string
	sess, err := c.store.Load(ctx)
	switch {
	case err != nil && env.Auth:
		// A store outage is not the same as being logged out; refuse to send
		// a protected request without knowing the credentials.
		return nil, wrapStoreErr(err)
	case err == nil && sess != nil:
		accessToken = sess.AccessToken
		refreshToken = sess.RefreshToken
	}

	var resp *Response
	for attempt := attemptInitial; ; attempt++ {
		resp, err = c.send(ctx, env, body, accessToken)
		if err != nil {
			c.metricInc(MetricDispatchNetworkError)
			return nil, err
		}
		if !env.Auth || resp.StatusCode != http.StatusUnauthorized || attempt == attemptRetried {
			break
		}
		if refreshToken == "" {
			if accessToken != "" {
				// The session cannot recover without a refresh credential.
				c.terminate(ctx, "access token rejected, no refresh token")
			}
			break
		}

		newToken, refreshErr := c.refreshAccessToken(ctx)
		if refreshErr != nil {
			c.log.Warn().
				Str("method", env.Method).
				Str("path", env.Path).
				Err(refreshErr).
				Msg("refresh failed, returning original response")
			break
		}
		accessToken = newToken
		c.metricInc(MetricDispatchRetried)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.metricInc(MetricDispatchUnauthorized)
	case resp.StatusCode >= 400:
		c.metricInc(MetricDispatchServerError)
	default:
		c.metricInc(MetricDispatchSuccess)
	}

	c.log.Debug().
		Str("method", env.Method).
		Str("path", env.Path).
		Int("status", resp.StatusCode).
		Bool("auth", env.Auth).
		Msg("dispatched")

	return resp, nil
}

// send performs a single HTTP attempt. The returned error is a *NetworkError
// for transport failures; request construction problems are plain errors.
func (c *Client) send(ctx context.Context, env Envelope, body []byte, token string) (*Response, error) {
	endpoint := c.endpoint(env)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, env.Method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("aurum: build request: %w", err)
	}

	req.Header.Set(headerContentType, contentTypeJSON)
	if ua := c.cfg.HTTP.UserAgent; ua != "" {
		req.Header.Set(headerUserAgent, ua)
	}
	requestID := requestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(headerRequestID, requestID)

	for key, values := range env.Header {
		req.Header[http.CanonicalHeaderKey(key)] = values
	}

	// Set last so the bearer header appears exactly once even when the
	// caller supplied overrides.
	if env.Auth && token != "" {
		req.Header.Set(headerAuthorization, bearerPrefix+token)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: env.Method, URL: endpoint, Err: err}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &NetworkError{Method: env.Method, URL: endpoint, Err: err}
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       data,
	}, nil
}

func (c *Client) endpoint(env Envelope) string {
	base := strings.TrimSuffix(c.cfg.BaseURL, "/")
	path := env.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	endpoint := base + path
	if len(env.Query) > 0 {
		endpoint += "?" + env.Query.Encode()
	}
	return endpoint
}
