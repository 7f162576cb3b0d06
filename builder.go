package aurum

import (
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	internalevents "github.com/aurumkit/aurum/internal/events"
	"github.com/aurumkit/aurum/tokenstore"
)

// Builder assembles a [Client]. Configure it during initialization and call
// [Builder.Build] exactly once.
type Builder struct {
	config Config
	redis  redis.UniversalClient
	store  tokenstore.Store

	httpClient *http.Client
	sink       EventSink
	logger     *zerolog.Logger

	built bool
}

// New returns a [Builder] seeded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL sets the backend base address.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.BaseURL = baseURL
	return b
}

// WithRedis supplies a Redis client; the token store is built over it with
// the configured prefix. Ignored when [Builder.WithStore] is also used.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithStore injects a token store directly. Takes precedence over WithRedis;
// use [tokenstore.NewMemoryStore] in tests.
func (b *Builder) WithStore(store tokenstore.Store) *Builder {
	b.store = store
	return b
}

// WithHTTPClient replaces the underlying HTTP client. The configured timeout
// is not applied to an injected client.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithEventSink sets the consumer of session lifecycle events.
func (b *Builder) WithEventSink(sink EventSink) *Builder {
	b.sink = sink
	return b
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = &logger
	return b
}

// Build validates the configuration and assembles the [Client].
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := b.store
	if store == nil {
		if b.redis == nil {
			return nil, errors.New("token store required: provide WithStore or WithRedis")
		}
		store = tokenstore.NewRedisStore(b.redis, cfg.Store.RedisPrefix)
	}

	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTP.Timeout}
	}

	logger := zerolog.Nop()
	if b.logger != nil {
		logger = *b.logger
	}

	c := &Client{
		cfg:     cfg,
		http:    httpClient,
		store:   store,
		log:     logger,
		metrics: NewMetrics(cfg.Metrics),
		events: internalevents.NewDispatcher(internalevents.Config{
			Enabled:    cfg.Events.Enabled,
			BufferSize: cfg.Events.BufferSize,
			DropIfFull: cfg.Events.DropIfFull,
		}, b.sink),
	}

	b.built = true
	return c, nil
}
