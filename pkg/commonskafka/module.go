package commonskafka

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewModule wires the kafka client into an fx application. The client is
// provided lazily: no broker connection is made until the first publish,
// subscribe or admin call. Disconnect is hooked into application shutdown.
func NewModule() fx.Option {
	return fx.Module("commonskafka",
		fx.Decorate(func(log *zap.Logger) *zap.Logger {
			return log.With(zap.String("component", "kafka"))
		}),
		fx.Provide(
			newConf,
			provideClient,
		),
	)
}

func provideClient(lc fx.Lifecycle, conf Conf, log *zap.Logger) (*Client, error) {
	client, err := NewClient(conf, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			client.Disconnect()
			return nil
		},
	})

	return client, nil
}
