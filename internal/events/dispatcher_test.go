package events

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversAndDrainsOnClose(t *testing.T) {
	sink := NewChannelSink(16)
	d := NewDispatcher(Config{Enabled: true, BufferSize: 16, DropIfFull: true}, sink)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		d.Emit(ctx, Event{Type: "session.logged_in", Success: true})
	}
	d.Close()

	var got int
	for {
		select {
		case <-sink.Events():
			got++
		default:
			assert.Equal(t, 5, got)
			return
		}
	}
}

func TestDispatcherDisabledIsNil(t *testing.T) {
	d := NewDispatcher(Config{Enabled: false}, NoOpSink{})
	require.Nil(t, d)

	// Every method is nil-safe.
	d.Emit(context.Background(), Event{Type: "x"})
	d.Close()
	assert.Zero(t, d.Dropped())
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	// A sink that never consumes: the worker blocks on the first event and
	// the buffer of one fills immediately after.
	block := make(chan struct{})
	defer close(block)
	sink := sinkFunc(func(context.Context, Event) { <-block })

	d := NewDispatcher(Config{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	ctx := context.Background()
	deadline := time.After(2 * time.Second)
	for d.Dropped() == 0 {
		select {
		case <-deadline:
			t.Fatal("dispatcher never reported a dropped event")
		default:
			d.Emit(ctx, Event{Type: "x"})
		}
	}
	assert.Greater(t, d.Dropped(), uint64(0))
}

func TestDispatcherCloseIdempotent(t *testing.T) {
	d := NewDispatcher(Config{Enabled: true, BufferSize: 1}, NoOpSink{})
	d.Close()
	d.Close()

	// Emit after close is a no-op.
	d.Emit(context.Background(), Event{Type: "x"})
}

func TestJSONWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), Event{
		ID:      "ev-1",
		Type:    "session.terminated",
		Success: true,
		Metadata: map[string]string{
			"reason": "refresh rejected by backend",
		},
	})
	sink.Emit(context.Background(), Event{ID: "ev-2", Type: "session.logged_out", Success: true})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var ev Event
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ev))
	assert.Equal(t, "ev-1", ev.ID)
	assert.Equal(t, "session.terminated", ev.Type)
	assert.Equal(t, "refresh rejected by backend", ev.Metadata["reason"])
}

type sinkFunc func(context.Context, Event)

func (f sinkFunc) Emit(ctx context.Context, event Event) { f(ctx, event) }
