// Package httpserver runs the HTTP front of the emitter daemon.
//
// Server wraps net/http with graceful shutdown. Run blocks until its context
// is cancelled or the process receives SIGINT or SIGTERM, then drains
// in-flight requests within the shutdown timeout and invokes the OnStop
// callbacks, which is where the bus connection is closed.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithOnStop(func(context.Context) { _ = closer.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// LivenessHandler and ReadinessHandler back the /health endpoints. Readiness
// runs its checks with the request context under a short timeout.
//
// Run joins listen errors with ErrStart and Shutdown joins drain errors with
// ErrShutdown.
package httpserver
