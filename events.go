package aurum

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	internalevents "github.com/aurumkit/aurum/internal/events"
)

// Session event types emitted through the configured [EventSink].
const (
	// EventLoggedIn fires after a login response has been persisted.
	EventLoggedIn = "session.logged_in"
	// EventLoggedOut fires after an explicit logout.
	EventLoggedOut = "session.logged_out"
	// EventTokenRefreshed fires after a refresh yielded and stored a new
	// access token.
	EventTokenRefreshed = "session.token_refreshed"
	// EventSessionTerminated fires after irrecoverable session teardown. The
	// hosting application reacts to it by returning to its unauthenticated
	// entry point; the client itself performs no navigation.
	EventSessionTerminated = "session.terminated"
)

// Event is a structured session lifecycle record.
type Event = internalevents.Event

// EventSink receives [Event] values from the client's async dispatcher.
type EventSink = internalevents.Sink

// NoOpSink is an [EventSink] that silently discards all events.
type NoOpSink = internalevents.NoOpSink

// ChannelSink is a buffered channel-based [EventSink].
type ChannelSink = internalevents.ChannelSink

// JSONWriterSink is an [EventSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalevents.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalevents.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalevents.NewJSONWriterSink(w)
}

func (c *Client) emitEvent(ctx context.Context, eventType string, success bool, emitErr error, metadata map[string]string) {
	if c == nil || c.events == nil {
		return
	}

	event := Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Type:      eventType,
		RequestID: requestIDFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if emitErr != nil {
		event.Error = emitErr.Error()
	}

	c.events.Emit(ctx, event)
}
