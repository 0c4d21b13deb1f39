// Command emitterd exposes an HTTP endpoint that publishes socket.io events
// to the Redis bus shared with socket.io servers.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/sioemitter/pkg/config"
	"github.com/dmitrymomot/sioemitter/pkg/emitter"
	"github.com/dmitrymomot/sioemitter/pkg/httpserver"
	"github.com/dmitrymomot/sioemitter/pkg/logger"
	"github.com/dmitrymomot/sioemitter/pkg/redis"
	"github.com/dmitrymomot/sioemitter/pkg/requestid"
)

type appConfig struct {
	Emitter emitter.Config
	Log     logger.Config
	HTTP    httpserver.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("emitterd stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log, err := logger.NewFromConfig(cfg.Log, logger.WithContextExtractors(requestid.LoggerExtractor()))
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)

	root, pub, err := emitter.Connect(ctx, cfg.Emitter, emitter.WithLogger(log.With(logger.Component("emitter"))))
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log.With(logger.Component("http"))),
		httpserver.WithOnStop(func(context.Context) {
			if err := pub.Close(); err != nil {
				log.Warn("closing redis", logger.Error(err))
			}
		}),
	)

	return srv.Run(ctx, newRouter(root, log, httpserver.Check(redis.Healthcheck(pub.Conn()))))
}
