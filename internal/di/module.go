package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/quizwallet/internal/adapter/gateway"
	"github.com/polkiloo/quizwallet/internal/app"
	"github.com/polkiloo/quizwallet/internal/config"
	"github.com/polkiloo/quizwallet/internal/logger"
	"github.com/polkiloo/quizwallet/internal/pkg/auth"
	"github.com/polkiloo/quizwallet/internal/server/http/router"
	"github.com/polkiloo/quizwallet/internal/storage/postgres"
	"github.com/polkiloo/quizwallet/internal/storage/redis"
	"github.com/polkiloo/quizwallet/internal/usecase"
)

// Module assembles the complete application graph. Extra options are
// appended last so callers can replace any provided value.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		redis.Module,
		gateway.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
