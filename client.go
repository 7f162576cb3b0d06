package aurum

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	internalevents "github.com/aurumkit/aurum/internal/events"
	"github.com/aurumkit/aurum/tokenstore"
)

// Client talks to the storefront backend. It owns the authenticated request
// dispatcher, the single-flight refresh coordinator, and the session
// lifecycle. Construct through [Builder.Build]; configured instances are
// immutable and safe for concurrent use.
type Client struct {
	cfg     Config
	http    *http.Client
	store   tokenstore.Store
	log     zerolog.Logger
	metrics *Metrics
	events  *internalevents.Dispatcher

	// refreshMu guards refreshCall, the single-flight record shared by every
	// dispatch that observes a 401 while a refresh is in flight.
	refreshMu   sync.Mutex
	refreshCall *refreshCall
}

// Close releases the client's background resources. It drains and stops the
// event dispatcher; in-flight requests are not interrupted.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.events != nil {
		c.events.Close()
	}
}

// Store exposes the token store, mainly so hosting applications can build an
// [AuthGate] over the same persistence the client writes to.
func (c *Client) Store() tokenstore.Store {
	if c == nil {
		return nil
	}
	return c.store
}

// Gate returns an [AuthGate] over the client's token store.
func (c *Client) Gate() *AuthGate {
	if c == nil {
		return nil
	}
	return NewAuthGate(c.store)
}

// State reports the session lifecycle position: refreshing while a refresh
// call is in flight, authenticated when an access token is stored, anonymous
// otherwise.
func (c *Client) State(ctx context.Context) SessionState {
	if c == nil {
		return StateAnonymous
	}

	c.refreshMu.Lock()
	refreshing := c.refreshCall != nil
	c.refreshMu.Unlock()
	if refreshing {
		return StateRefreshing
	}

	sess, err := c.store.Load(ctx)
	if err == nil && sess != nil && sess.AccessToken != "" {
		return StateAuthenticated
	}
	return StateAnonymous
}

// Profile returns the stored display metadata. Returns [ErrNoSession] when
// the client is anonymous.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	if c == nil {
		return Profile{}, ErrClientNotReady
	}

	sess, err := c.store.Load(ctx)
	if err != nil {
		return Profile{}, wrapStoreErr(err)
	}
	if sess == nil || sess.AccessToken == "" {
		return Profile{}, ErrNoSession
	}

	return Profile{
		Username:  sess.Username,
		Email:     sess.Email,
		Role:      Role(sess.Role),
		CreatedAt: sess.CreatedAt,
	}, nil
}

// MetricsSnapshot returns a point-in-time copy of the client's counters.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return c.metrics.Snapshot()
}

// EventsDropped reports how many session events were discarded because the
// event buffer was full.
func (c *Client) EventsDropped() uint64 {
	if c == nil {
		return 0
	}
	return c.events.Dropped()
}
