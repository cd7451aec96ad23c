package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jc-juarez/lazarus-statusgen/pkg/auth"
	"github.com/jc-juarez/lazarus-statusgen/pkg/bootstrap"
	"github.com/jc-juarez/lazarus-statusgen/pkg/config"
	"github.com/jc-juarez/lazarus-statusgen/pkg/envelope"
	"github.com/jc-juarez/lazarus-statusgen/pkg/kafka"
	log "github.com/jc-juarez/lazarus-statusgen/pkg/logger"
	"github.com/jc-juarez/lazarus-statusgen/pkg/tracing"
)

const (
	BackendNone  = "none"
	BackendKafka = "kafka"
	BackendRedis = "redis"
)

// Notifier publishes registry events.
type Notifier interface {
	Notify(ctx context.Context, evt *envelope.RegistryEvent) error
	Close() error
}

type publishFunc func(ctx context.Context, key string, payload []byte) error

type notifier struct {
	backend string
	signer  *auth.Signer
	timeout time.Duration
	publish publishFunc
	close   func() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Notify(context.Context, *envelope.RegistryEvent) error { return nil }
func (Nop) Close() error                                          { return nil }

// Option customizes a Notifier.
type Option func(*notifier)

// WithSigner attaches an HS256 signature to every event.
func WithSigner(s *auth.Signer) Option {
	return func(n *notifier) { n.signer = s }
}

// WithTimeout bounds a single publish.
func WithTimeout(d time.Duration) Option {
	return func(n *notifier) { n.timeout = d }
}

// NewKafka publishes through m on topic (empty means the manager default).
func NewKafka(m *kafka.Manager, topic string, opts ...Option) Notifier {
	return build(BackendKafka, func(ctx context.Context, key string, payload []byte) error {
		return m.Publish(ctx, topic, []byte(key), payload)
	}, m.Close, opts)
}

// publishLog reports Kafka publish latency through the shared logger.
type publishLog struct{}

func (publishLog) ObservePublish(topic string, d time.Duration, err error) {
	entry := log.WithFields(log.Fields{"topic": topic, "latency_ms": d.Milliseconds()})
	if err != nil {
		entry.WithError(err).Warn("Kafka publish failed")
		return
	}
	entry.Debug("Kafka publish done")
}

// newLoggedKafka is NewKafka with publish latency logged.
func newLoggedKafka(m *kafka.Manager, topic string, opts []Option) Notifier {
	m.SetPublishObserver(publishLog{})
	return NewKafka(m, topic, opts...)
}

// NewRedis publishes on a Redis pub/sub channel.
func NewRedis(client redis.UniversalClient, channel string, opts ...Option) Notifier {
	return build(BackendRedis, func(ctx context.Context, _ string, payload []byte) error {
		return client.Publish(ctx, channel, payload).Err()
	}, client.Close, opts)
}

func build(backend string, publish publishFunc, closeFn func() error, opts []Option) *notifier {
	n := &notifier{backend: backend, publish: publish, close: closeFn}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *notifier) Notify(ctx context.Context, evt *envelope.RegistryEvent) (err error) {
	if evt == nil {
		return errors.New("event is nil")
	}
	ctx, span := tracing.Start(ctx, "notify",
		attribute.String("notify.backend", n.backend),
		attribute.String("event.kind", evt.Kind),
	)
	defer func() { tracing.End(span, err) }()

	envelope.Normalize(evt)
	envelope.StampTrace(evt, tracing.InjectMap(ctx))
	if n.signer != nil {
		claims := auth.EventClaims{Kind: evt.Kind, Digest: evt.Digest}
		if evt.Code != nil {
			claims.Code = evt.Code.Name
		}
		if evt.Signature, err = n.signer.Sign(evt.ID, claims); err != nil {
			return fmt.Errorf("sign event: %w", err)
		}
	}
	if err = envelope.Validate(evt); err != nil {
		return err
	}
	payload, err := envelope.Encode(evt)
	if err != nil {
		return err
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}
	if err = n.publish(ctx, evt.Key(), payload); err != nil {
		return fmt.Errorf("publish to %s: %w", n.backend, err)
	}
	return nil
}

func (n *notifier) Close() error {
	if n.close == nil {
		return nil
	}
	return n.close()
}

// New builds the notifier selected by cfg.Backend.
func New(ctx context.Context, cfg config.NotifyConfig) (Notifier, error) {
	var opts []Option
	if cfg.SigningSecret != "" {
		signer, err := auth.NewSigner(auth.Config{Secret: cfg.SigningSecret, Issuer: cfg.Issuer})
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithSigner(signer))
	}
	opts = append(opts, WithTimeout(cfg.Timeout.Duration()))

	switch cfg.Backend {
	case "", BackendNone:
		return Nop{}, nil
	case BackendKafka:
		m, err := bootstrap.InitKafka(cfg.Kafka)
		if err != nil {
			return nil, fmt.Errorf("init kafka: %w", err)
		}
		return newLoggedKafka(m, cfg.Kafka.Topic, opts), nil
	case BackendRedis:
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Timeout.Duration())
			defer cancel()
		}
		client, err := bootstrap.InitRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("init redis: %w", err)
		}
		return NewRedis(client, cfg.Redis.Channel, opts...), nil
	default:
		return nil, fmt.Errorf("unknown notify backend %q", cfg.Backend)
	}
}
