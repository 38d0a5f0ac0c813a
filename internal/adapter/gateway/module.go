package gateway

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/quizwallet/internal/config"
)

// Module exposes the gateway client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	p.Logger.Info("payment gateway configured",
		slog.String("environment", string(p.Config.PaymentEnvironment)),
		slog.String("url", p.Config.GatewayURL()),
	)
	return NewHTTPClient(p.Config.GatewayURL(), p.Logger)
}
