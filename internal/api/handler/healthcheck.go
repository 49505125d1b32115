package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/field-sales-api/pkg/apiErrors"
	"github.com/vfg2006/field-sales-api/pkg/log"
)

// Pinger é satisfeito pela conexão com o banco
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if db != nil {
			if err := db.Ping(ctx); err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("Banco indisponível no healthcheck")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Banco de dados indisponível", nil)
				return
			}
		}

		apiErrors.WriteSuccess(w, http.StatusOK, map[string]string{"time": time.Now().Format(time.RFC3339)}, "ok")
	})
}
