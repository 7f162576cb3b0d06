package aurum

import (
	"context"
	"fmt"
	"net/http"
)

// refreshCall is the shared record of one in-flight refresh. Waiters block on
// done and then read token/err; both are written exactly once, before done is
// closed.
type refreshCall struct {
	done  chan struct{}
	token string
	err   error
}

// refreshAccessToken obtains a new access token, or an error when the session
// could not be recovered (in which case it has been terminated).
//
// The operation is single-flight: at most one refresh call is outstanding at
// any time. A caller that observes a 401 while another refresh is in flight
// joins it and shares its outcome instead of issuing an independent call —
// two uncoordinated refreshes could race to overwrite the store with tokens
// from different server-side refresh generations.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	c.refreshMu.Lock()
	if call := c.refreshCall; call != nil {
		c.refreshMu.Unlock()
		c.metricInc(MetricRefreshShared)
		select {
		case <-call.done:
			return call.token, call.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	call := &refreshCall{done: make(chan struct{})}
	c.refreshCall = call
	c.refreshMu.Unlock()

	call.token, call.err = c.doRefresh(ctx)

	c.refreshMu.Lock()
	c.refreshCall = nil
	c.refreshMu.Unlock()
	close(call.done)

	return call.token, call.err
}

// doRefresh performs the actual refresh exchange. Only the single-flight
// owner runs it.
func (c *Client) doRefresh(ctx context.Context) (string, error) {
	sess, err := c.store.Load(ctx)
	if err != nil {
		// Store outage: neither refresh nor terminate can run sensibly.
		// The session stays intact for a later attempt.
		return "", wrapStoreErr(err)
	}
	if sess == nil || sess.RefreshToken == "" {
		c.metricInc(MetricRefreshFailure)
		c.terminate(ctx, "refresh requested without refresh token")
		return "", ErrRefreshFailed
	}

	endpoint := c.endpoint(Envelope{Path: "/auth/refresh"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("aurum: build refresh request: %w", err)
	}
	req.Header.Set(headerContentType, contentTypeJSON)
	req.Header.Set(headerRefreshToken, sess.RefreshToken)

	httpResp, err := c.http.Do(req)
	if err != nil {
		// Transport failure is not a verdict on the refresh token; keep the
		// session so connectivity loss does not log the user out.
		return "", &NetworkError{Method: http.MethodPost, URL: endpoint, Err: err}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		c.metricInc(MetricRefreshFailure)
		c.emitEvent(ctx, EventTokenRefreshed, false, ErrRefreshFailed, map[string]string{
			"status": fmt.Sprint(httpResp.StatusCode),
		})
		c.terminate(ctx, "refresh rejected by backend")
		return "", ErrRefreshFailed
	}

	newToken := bearerToken(httpResp.Header.Get(headerAuthorization))
	if newToken == "" {
		// A 2xx without the bearer header is still a failed refresh; the
		// backend contract issues tokens via headers only.
		c.metricInc(MetricRefreshFailure)
		c.terminate(ctx, "refresh response missing bearer header")
		return "", ErrRefreshFailed
	}

	if err := c.store.SetAccessToken(ctx, newToken); err != nil {
		return "", wrapStoreErr(err)
	}

	c.metricInc(MetricRefreshSuccess)
	c.emitEvent(ctx, EventTokenRefreshed, true, nil, nil)
	c.log.Debug().Msg("access token refreshed")

	return newToken, nil
}

// terminate idempotently tears down the session: it clears every stored
// field as one operation and emits [EventSessionTerminated] so the hosting
// application can return to its unauthenticated entry point. It never fails
// upward; a store error during clear is logged and the event still fires.
func (c *Client) terminate(ctx context.Context, reason string) {
	if c == nil {
		return
	}

	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn().Err(err).Msg("session clear failed during terminate")
	}

	c.metricInc(MetricSessionTerminated)
	c.emitEvent(ctx, EventSessionTerminated, true, nil, map[string]string{
		"reason": reason,
	})
	c.log.Info().Str("reason", reason).Msg("session terminated")
}
