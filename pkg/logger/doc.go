// Package logger builds the structured slog loggers used across the emitter
// and its gateway.
//
// New creates a *slog.Logger from functional options: output format (text or
// JSON), minimum level, static attributes and ContextExtractor callbacks that
// copy request-scoped values from context.Context into every record.
// NewFromConfig does the same from an environment-driven Config.
//
// Attribute helpers (Channel, Namespace, Room, Event, PacketID, Error, ...)
// keep key names consistent between packages.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(logger.Production, "emitterd"),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "event emitted",
//	    logger.Channel("socket.io#/#room42#"),
//	    logger.Event("ping"),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
