package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/vfg2006/field-sales-api/internal/domain"
	"github.com/vfg2006/field-sales-api/pkg/apiErrors"
	"github.com/vfg2006/field-sales-api/pkg/log"
)

const (
	slowRequestThreshold = 500 * time.Millisecond
	contextKeyActor      = contextKey("actor")
)

// actor é preenchido pelo AuthMiddleware para que o log de conclusão saiba quem chamou
type actor struct {
	claims *domain.Claims
}

func (a *actor) fields() log.Fields {
	if a.claims == nil {
		return log.Fields{}
	}

	fields := log.Fields{
		"user_id":   a.claims.UserID,
		"user_role": a.claims.UserRoleID,
	}
	if a.claims.SalesRepID != nil {
		fields["sales_rep_id"] = *a.claims.SalesRepID
	}
	return fields
}

// statusRecorder guarda o status escrito pelo handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware gera o ID de correlação, devolve-o em X-Correlation-ID e registra início e fim
// de cada requisição. Em desenvolvimento o pkg/log descarta os campos de produção.
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context())
			caller := &actor{}
			r = r.WithContext(context.WithValue(ctx, contextKeyActor, caller))
			w.Header().Set("X-Correlation-ID", correlationID)

			log.ForContext(ctx).WithFields(log.Fields{
				"method":       r.Method,
				"path":         r.URL.Path,
				"query":        r.URL.RawQuery,
				"remote_addr":  r.RemoteAddr,
				"user_agent":   r.UserAgent(),
				"content_type": r.Header.Get("Content-Type"),
			}).Debug("→ Requisição iniciada")

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			startTime := time.Now()

			next.ServeHTTP(recorder, r)

			elapsed := time.Since(startTime)
			logger := log.ForContext(ctx).WithFields(caller.fields()).WithFields(log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": recorder.status,
				"duration_ms": elapsed.Milliseconds(),
			})

			message := fmt.Sprintf("%s %s %d em %s", r.Method, r.URL.Path, recorder.status, formatDuration(elapsed))
			switch {
			case recorder.status >= http.StatusInternalServerError:
				logger.Error(message)
			case recorder.status >= http.StatusBadRequest:
				logger.Warn(message)
			default:
				logger.Info(message)
			}

			if elapsed > slowRequestThreshold {
				logger.Warnf("Requisição lenta: %s", formatDuration(elapsed))
			}
		})
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// LogPanicMiddleware transforma panics em 500 com o envelope padrão
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]

				logger := log.ForContext(r.Context()).WithFields(log.Fields{
					"panic_error": recovered,
					"method":      r.Method,
					"path":        r.URL.Path,
				})

				if log.IsDevelopment() {
					logger.Error("❌ PANIC na aplicação")
					fmt.Fprintf(os.Stderr, "\n=== STACK TRACE ===\n%s\n===================\n", stack)
				} else {
					logger.WithField("stack_trace", string(stack)).Error("Erro não tratado na aplicação")
				}

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
