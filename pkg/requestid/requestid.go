package requestid

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sioemitter/pkg/logger"
)

// Header carries the correlation id in both directions.
const Header = "X-Request-ID"

const maxLength = 128

type contextKey struct{}

// Generator returns a fresh request id.
type Generator func() string

// Option configures the middleware.
type Option func(*options)

type options struct {
	generate Generator
	header   string
}

// WithGenerator replaces the default UUIDv4 generator. Nil is ignored.
func WithGenerator(g Generator) Option {
	return func(o *options) {
		if g != nil {
			o.generate = g
		}
	}
}

// WithHeader reads and echoes a different header. Empty names are ignored.
func WithHeader(name string) Option {
	return func(o *options) {
		if name != "" {
			o.header = name
		}
	}
}

// Middleware reuses a well-formed client id or generates one, stores it in the
// request context and echoes it in the response header.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	o := &options{generate: uuid.NewString, header: Header}
	for _, opt := range opts {
		opt(o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(o.header)
			if !valid(id) {
				id = o.generate()
			}
			w.Header().Set(o.header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request id or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// LoggerExtractor adds request_id to records logged with a request context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}

// valid accepts 1..128 characters from [A-Za-z0-9_-].
func valid(id string) bool {
	if id == "" || len(id) > maxLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
