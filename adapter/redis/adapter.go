package redis

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultKeyPrefix = "proptext:text:"
	defaultTTL       = 7 * 24 * time.Hour
)

// Adapter is a TextCache keeping one hash per document URL.
type Adapter struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

type Option func(*Adapter)

func WithKeyPrefix(prefix string) Option {
	return func(a *Adapter) {
		a.keyPrefix = prefix
	}
}

// WithTTL sets how long a cleaning outcome is remembered. Zero keeps
// entries forever.
func WithTTL(ttl time.Duration) Option {
	return func(a *Adapter) {
		a.ttl = ttl
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func New(client *redis.Client, options ...Option) *Adapter {
	a := &Adapter{
		client:    client,
		keyPrefix: defaultKeyPrefix,
		ttl:       defaultTTL,
		logger:    zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	a.logger.Sugar().With(
		"prefix", a.keyPrefix,
		"ttl", a.ttl,
	).Info("init redis adapter")

	return a
}
