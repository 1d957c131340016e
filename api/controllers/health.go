package controllers

import (
	"net/http"

	"github.com/dgrayson/cardkeeper-backend/api/responses"
	"github.com/dgrayson/cardkeeper-backend/pkg/config"
	"github.com/dgrayson/cardkeeper-backend/pkg/db"
	pkgerrors "github.com/dgrayson/cardkeeper-backend/pkg/errors"
	"github.com/dgrayson/cardkeeper-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CardKeeper-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when the database answers a ping.
func HealthReady(cfg *config.Config, pinger db.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-CardKeeper-Env", cfg.App.Env)

		if pinger != nil {
			if err := pinger.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "database unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
