package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/blog-site/errs"
	"github.com/rs/zerolog/log"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	responder   Responder
	store       pinger
	startupTime time.Time
}

func newHealthHandler(store pinger, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger, nil),
		store:       store,
		startupTime: startupTime,
	}
}

func (h healthHandler) healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			apiErr := errs.NewDatabaseError("ping", "database", err)
			if apiErr.StatusCode < http.StatusServiceUnavailable {
				apiErr.StatusCode = http.StatusServiceUnavailable
			}
			h.responder.WriteError(w, apiErr)
			return
		}

		h.responder.WriteJSON(w, healthResponse{
			Status: "ok",
			Uptime: time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}
