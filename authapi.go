package aurum

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginProfile struct {
	Role      string `json:"role"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
}

// Login authenticates against the backend and persists the resulting
// session. Tokens arrive via response headers ("authorization: Bearer <t>"
// and "refresh-token"), the profile via the body payload; the whole session
// is saved in one store operation so no partial identity is ever visible.
//
// A 2xx response missing either token header is treated as a failed login
// and nothing is stored.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}

	resp, err := c.Do(ctx, Envelope{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   loginRequest{Email: email, Password: password},
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		c.metricInc(MetricLoginFailure)
		return nil, apiError(resp)
	}

	accessToken := bearerToken(resp.Header.Get(headerAuthorization))
	refreshToken := resp.Header.Get(headerRefreshToken)
	if accessToken == "" || refreshToken == "" {
		c.metricInc(MetricLoginFailure)
		c.emitEvent(ctx, EventLoggedIn, false, ErrLoginFailed, nil)
		return nil, ErrLoginFailed
	}

	profile, _, err := decodeData[loginProfile](resp)
	if err != nil {
		c.metricInc(MetricLoginFailure)
		return nil, err
	}

	sess := &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Role:         profile.Role,
		Email:        profile.Email,
		Username:     profile.Username,
		CreatedAt:    profile.CreatedAt,
	}
	if err := c.store.Save(ctx, sess); err != nil {
		return nil, wrapStoreErr(err)
	}

	c.metricInc(MetricSessionCreated)
	c.metricInc(MetricLoginSuccess)
	c.emitEvent(ctx, EventLoggedIn, true, nil, map[string]string{
		"role": profile.Role,
	})
	c.log.Info().Str("role", profile.Role).Msg("logged in")

	return sess.Clone(), nil
}

// Register creates a new account. It has no session side effects; callers
// log in separately afterwards.
func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	if c == nil {
		return ErrClientNotReady
	}
	if !input.Role.Valid() {
		return ErrInvalidRole
	}

	resp, err := c.Do(ctx, Envelope{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   input,
	})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return apiError(resp)
	}
	return nil
}

// Logout clears the session. The backend holds no logout endpoint; logout is
// purely client-side, idempotent, and emits [EventLoggedOut].
func (c *Client) Logout(ctx context.Context) error {
	if c == nil {
		return ErrClientNotReady
	}

	if err := c.store.Clear(ctx); err != nil {
		return wrapStoreErr(err)
	}

	c.metricInc(MetricLogout)
	c.emitEvent(ctx, EventLoggedOut, true, nil, nil)
	c.log.Info().Msg("logged out")
	return nil
}
