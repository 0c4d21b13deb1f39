// Package requestid correlates gateway requests with the log records of the
// emits they trigger.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware())
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// A client supplied X-Request-ID is reused when it is 1 to 128 characters of
// letters, digits, '-' or '_'. Anything else is replaced by a UUIDv4.
package requestid
