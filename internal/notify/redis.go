package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultChannel = "cartUpdated"

// RedisRelay extends a local Notifier across processes sharing the same cart
// storage. Each invalidation is announced on a Redis channel with the origin
// of the publishing process; Run re-publishes foreign announcements locally.
type RedisRelay struct {
	client  *redis.Client
	channel string
	origin  string
	local   *Notifier
	logger  *zap.Logger
}

func NewRedisRelay(client *redis.Client, channel string, local *Notifier, logger *zap.Logger) *RedisRelay {
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRelay{
		client:  client,
		channel: channel,
		origin:  uuid.NewString(),
		local:   local,
		logger:  logger,
	}
}

// Publish notifies local observers first, then the other processes. A relay
// failure is logged only: the change it announces is already durable.
func (r *RedisRelay) Publish(ctx context.Context) {
	r.local.Publish(ctx)
	if err := r.client.Publish(ctx, r.channel, r.origin).Err(); err != nil {
		r.logger.Warn("relay cart invalidation",
			zap.String("channel", r.channel),
			zap.Error(err),
		)
	}
}

// Run forwards invalidations from other processes until ctx ends.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	r.logger.Info("cart relay subscribed", zap.String("channel", r.channel), zap.String("origin", r.origin))

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			if msg.Payload == r.origin {
				continue
			}
			r.local.Publish(ctx)
		}
	}
}

var _ Publisher = (*RedisRelay)(nil)
