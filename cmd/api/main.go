package main

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/field-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/field-sales-api/infrastructure/locker"
	"github.com/vfg2006/field-sales-api/infrastructure/repository"
	"github.com/vfg2006/field-sales-api/internal/api"
	"github.com/vfg2006/field-sales-api/internal/config"
	"github.com/vfg2006/field-sales-api/internal/scheduler"
	"github.com/vfg2006/field-sales-api/internal/usecases/authenticating"
	"github.com/vfg2006/field-sales-api/internal/usecases/catalog"
	"github.com/vfg2006/field-sales-api/internal/usecases/ordering"
	"github.com/vfg2006/field-sales-api/internal/usecases/ranking"
	"github.com/vfg2006/field-sales-api/internal/usecases/reconciling"
	"github.com/vfg2006/field-sales-api/internal/usecases/reporting"
	"github.com/vfg2006/field-sales-api/internal/usecases/visiting"
	"github.com/vfg2006/field-sales-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	nameLocker := newLocker(ctx, cfg)

	storeRepo := repository.NewStoreRepository(pgConn)
	customerRepo := repository.NewCustomerRepository(pgConn)
	salesRepRepo := repository.NewSalesRepRepository(pgConn)
	orderRepo := repository.NewOrderRepository(pgConn)
	visitRepo := repository.NewFieldVisitRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	storeRankingRepo := repository.NewStoreRankingRepository(pgConn)

	reconciler := reconciling.NewService(storeRepo, customerRepo, cfg.App)
	rankingService := ranking.NewStoreRankingService(storeRankingRepo, orderRepo, storeRepo, cfg.App)

	services := api.Services{
		Authenticator: authenticating.NewService(userRepo, cfg.Auth),
		Orders:        ordering.NewService(orderRepo, storeRepo, salesRepRepo, reconciler, pgConn, nameLocker),
		Visits:        visiting.NewService(visitRepo, storeRepo, salesRepRepo, reconciler, pgConn, nameLocker),
		Catalog:       catalog.NewService(storeRepo, salesRepRepo),
		Reports:       reporting.NewService(orderRepo, visitRepo, storeRepo, salesRepRepo, cfg.App),
		Ranking:       rankingService,
	}

	storeRankingSyncService := scheduler.NewStoreRankingSyncService(rankingService, cfg.StoreRanking, cfg.App.Location)

	if err := storeRankingSyncService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador do ranking de lojas")
	} else {
		log.L.Info("Agendador do ranking de lojas iniciado com sucesso")
	}

	server, err := api.New(cfg, services, storeRankingSyncService, pgConn)
	if err != nil {
		log.L.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// newLocker usa o Redis quando configurado; sem Redis o lock vale só para esta instância
func newLocker(ctx context.Context, cfg *config.Config) locker.Locker {
	if cfg.Redis.Address == "" {
		log.L.Warn("REDIS_ADDRESS não definido, usando lock em memória")
		return locker.NewLocalLocker()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao Redis")
	}

	log.L.WithField("address", cfg.Redis.Address).Info("Lock distribuído via Redis habilitado")
	return locker.NewRedisLocker(rdb, cfg.Lock)
}
