package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/field-sales-api/internal/api/handler"
	"github.com/vfg2006/field-sales-api/internal/api/handler/router"
	"github.com/vfg2006/field-sales-api/internal/config"
	"github.com/vfg2006/field-sales-api/internal/scheduler"
	"github.com/vfg2006/field-sales-api/internal/usecases/authenticating"
	"github.com/vfg2006/field-sales-api/internal/usecases/catalog"
	"github.com/vfg2006/field-sales-api/internal/usecases/ordering"
	"github.com/vfg2006/field-sales-api/internal/usecases/ranking"
	"github.com/vfg2006/field-sales-api/internal/usecases/reporting"
	"github.com/vfg2006/field-sales-api/internal/usecases/visiting"
	"github.com/vfg2006/field-sales-api/pkg/log"
	"github.com/vfg2006/field-sales-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Services reúne os casos de uso expostos pela API
type Services struct {
	Authenticator authenticating.Authenticator
	Orders        ordering.OrderManager
	Visits        visiting.VisitRecorder
	Catalog       catalog.Catalog
	Reports       reporting.Reporter
	Ranking       ranking.RankingService
}

func New(
	config *config.Config,
	services Services,
	storeRankingSyncService *scheduler.StoreRankingSyncService,
	db handler.Pinger,
) (*Server, error) {
	cronServices := handler.CronJobServices{}
	if storeRankingSyncService != nil {
		cronServices[handler.CronJobTypeStoreRanking] = storeRankingSyncService
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(db)...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Orders(services.Orders)...),
		router.WithRoutes(handler.FieldVisits(services.Visits)...),
		router.WithRoutes(handler.Catalog(services.Catalog, services.Reports)...),
		router.WithRoutes(handler.Reports(services.Reports)...),
		router.WithRoutes(handler.StoreRanking(services.Ranking)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.CorsAllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithFields(log.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.L.WithFields(log.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	log.L.Info("Servidor HTTP desligado com sucesso")
	return nil
}
