package logger

import (
	"log/slog"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/polkiloo/quizwallet/internal/config"
)

// Module wires slog logger for dependency injection and routes fx
// lifecycle events through it.
var Module = fx.Options(
	fx.Provide(func(cfg *config.Config) *slog.Logger {
		return New(cfg.LogLevel)
	}),
	fx.WithLogger(NewEventLogger),
)

// NewEventLogger adapts logger to fx event logging.
func NewEventLogger(logger *slog.Logger) fxevent.Logger {
	return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
}
