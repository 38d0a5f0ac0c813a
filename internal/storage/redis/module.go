package redis

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/quizwallet/internal/config"
	"github.com/polkiloo/quizwallet/internal/domain/repository"
)

// Module provides the idempotency store, backed by Redis when configured.
var Module = fx.Options(
	fx.Provide(newIdempotencyStore),
)

type storeParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

var newClient = func(addr string) *goredis.Client {
	return goredis.NewClient(&goredis.Options{Addr: addr})
}

func newIdempotencyStore(p storeParams) repository.IdempotencyStore {
	if p.Config.RedisAddress == "" {
		p.Logger.Warn("redis address not configured, quiz deductions are not deduplicated")
		return NoopStore{}
	}

	client := newClient(p.Config.RedisAddress)
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				p.Logger.Warn("redis ping failed", slog.String("addr", p.Config.RedisAddress), slog.String("error", err.Error()))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return NewIdempotencyStore(client, p.Config.IdempotencyTTL)
}
