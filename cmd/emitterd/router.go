package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/sioemitter/pkg/emitter"
	"github.com/dmitrymomot/sioemitter/pkg/httpserver"
	"github.com/dmitrymomot/sioemitter/pkg/logger"
	"github.com/dmitrymomot/sioemitter/pkg/requestid"
)

const maxEmitBody = 1 << 20

type emitRequest struct {
	Namespace string `json:"namespace"`
	Room      string `json:"room"`
	Event     string `json:"event"`
	Args      []any  `json:"args"`
	Volatile  bool   `json:"volatile"`
	Broadcast bool   `json:"broadcast"`
	Compress  bool   `json:"compress"`
	Local     bool   `json:"local"`
}

type emitResponse struct {
	Channel string `json:"channel"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newRouter(root emitter.Emitter, log *slog.Logger, ready ...httpserver.Check) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware())
	r.Use(middleware.Recoverer)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, ready...))
	r.Post("/emit", emitHandler(root, log))
	return r
}

func emitHandler(root emitter.Emitter, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEmitBody))
		dec.UseNumber()
		dec.DisallowUnknownFields()

		var req emitRequest
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
			return
		}

		e := root.Of(req.Namespace)
		if req.Room != "" {
			e = e.To(req.Room)
		}
		if req.Volatile {
			e = e.Volatile()
		}
		if req.Broadcast {
			e = e.Broadcast()
		}
		if req.Compress {
			e = e.Compress(true)
		}
		if req.Local {
			e = e.Local()
		}

		err := e.Emit(ctx, req.Event, req.Args...)
		switch {
		case err == nil:
			writeJSON(w, http.StatusAccepted, emitResponse{Channel: e.Channel()})
		case errors.Is(err, emitter.ErrEmptyEvent), errors.Is(err, emitter.ErrUnencodableValue):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, emitter.ErrTransport):
			log.ErrorContext(ctx, "emit failed",
				logger.Channel(e.Channel()),
				logger.Event(req.Event),
				logger.Error(err),
			)
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "bus unavailable"})
		default:
			log.ErrorContext(ctx, "emit failed", logger.Event(req.Event), logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
