package aurum

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumkit/aurum/tokenstore"
)

// drainSink collects the types of every event already delivered to the sink.
// Callers close the client first so the dispatcher has flushed its buffer.
func drainSink(sink *ChannelSink) []string {
	var types []string
	for {
		select {
		case ev := <-sink.Events():
			types = append(types, ev.Type)
		default:
			return types
		}
	}
}

func TestRefreshSingleFlight(t *testing.T) {
	const workers = 16

	var refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/refresh", r.URL.Path)
		atomic.AddInt32(&refreshCalls, 1)
		// Long enough that every worker arrives while the call is in flight.
		time.Sleep(250 * time.Millisecond)
		w.Header().Set("Authorization", "Bearer newtok")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := tokenstore.NewMemoryStore()
	seedSession(t, store, "expired", "xyz")
	c := newTestClient(t, srv.URL, store)

	var wg sync.WaitGroup
	start := make(chan struct{})
	tokens := make([]string, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			tokens[i], errs[i] = c.refreshAccessToken(context.Background())
		}(i)
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&refreshCalls), "concurrent callers must share one refresh")
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "newtok", tokens[i])
	}

	sess, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "newtok", sess.AccessToken)

	snap := c.MetricsSnapshot()
	assert.EqualValues(t, 1, snap.Counters[MetricRefreshSuccess])
	assert.EqualValues(t, workers-1, snap.Counters[MetricRefreshShared])
}

func TestRefreshRejectedTerminatesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := tokenstore.NewMemoryStore()
	seedSession(t, store, "expired", "xyz")

	sink := NewChannelSink(8)
	c := newSinkedClient(t, srv.URL, store, sink)

	_, err := c.refreshAccessToken(context.Background())
	require.ErrorIs(t, err, ErrRefreshFailed)

	sess, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess, "every stored field must be gone, not just the access token")

	c.Close()
	assert.Contains(t, drainSink(sink), EventSessionTerminated)
}

func TestRefreshMissingBearerHeaderTerminates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK) // 2xx but no Authorization header
	}))
	defer srv.Close()

	store := tokenstore.NewMemoryStore()
	seedSession(t, store, "expired", "xyz")
	c := newTestClient(t, srv.URL, store)

	_, err := c.refreshAccessToken(context.Background())
	require.ErrorIs(t, err, ErrRefreshFailed)

	sess, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestRefreshTransportFailureKeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	store := tokenstore.NewMemoryStore()
	seedSession(t, store, "expired", "xyz")
	c := newTestClient(t, srv.URL, store)

	_, err := c.refreshAccessToken(context.Background())
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))

	sess, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess, "connectivity loss must not log the user out")
	assert.Equal(t, "expired", sess.AccessToken)
	assert.Equal(t, "xyz", sess.RefreshToken)
}

func TestRefreshWithoutSessionTerminates(t *testing.T) {
	var refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, tokenstore.NewMemoryStore())

	_, err := c.refreshAccessToken(context.Background())
	require.ErrorIs(t, err, ErrRefreshFailed)
	assert.EqualValues(t, 0, atomic.LoadInt32(&refreshCalls), "no refresh call without a refresh token")
}

func TestTerminateIsIdempotent(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	seedSession(t, store, "abc", "xyz")
	c := newTestClient(t, "http://localhost:9", store)

	ctx := context.Background()
	c.terminate(ctx, "first")
	c.terminate(ctx, "second")

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.EqualValues(t, 2, c.MetricsSnapshot().Counters[MetricSessionTerminated])
}
