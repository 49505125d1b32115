// Package scheduler contém os serviços de agendamento em segundo plano
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/field-sales-api/internal/config"
	"github.com/vfg2006/field-sales-api/internal/usecases/ranking"
	"github.com/vfg2006/field-sales-api/pkg/log"
)

const syncTimeout = 2 * time.Minute

type StoreRankingSyncService struct {
	scheduler           *gocron.Scheduler
	ranking             ranking.RankingService
	config              config.StoreRanking
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

func NewStoreRankingSyncService(rankingService ranking.RankingService, cfg config.StoreRanking, location *time.Location) *StoreRankingSyncService {
	if location == nil {
		location = time.Local
	}

	log.L.WithFields(log.Fields{
		"cron_schedule": cfg.CronSchedule,
		"sync_enabled":  cfg.SyncEnabled,
	}).Info("Configuração do agendador do ranking de lojas carregada")

	return &StoreRankingSyncService{
		scheduler: gocron.NewScheduler(location),
		ranking:   rankingService,
		config:    cfg,
	}
}

func (s *StoreRankingSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		log.L.Info("Cron do ranking de lojas desabilitada por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Iniciando cron do ranking de lojas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.UpdateStoreRanking(ctx); err != nil {
			log.L.WithError(err).Error("Erro na atualização do ranking de lojas")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do ranking de lojas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando cron do ranking de lojas")
		s.scheduler.Stop()
	}()

	return nil
}

// UpdateStoreRanking ignora a chamada quando outra sincronização já está rodando
func (s *StoreRankingSyncService) UpdateStoreRanking(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Warn("Sincronização do ranking de lojas já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), syncTimeout)
	defer cancel()

	_, err := s.ranking.UpdateStoreRanking(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastSyncError = ""
	if err != nil {
		s.lastSyncError = err.Error()
	}
	s.syncMutex.Unlock()

	return err
}

// TriggerManualSync inicia manualmente uma sincronização do ranking de lojas
func (s *StoreRankingSyncService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		log.ForContext(ctx).Info("Sincronização do ranking de lojas já em andamento, ignorando solicitação manual")
		return false
	}

	log.ForContext(ctx).Info("Iniciando sincronização manual do ranking de lojas")
	go func() {
		if err := s.UpdateStoreRanking(ctx); err != nil {
			log.L.WithError(err).Error("Erro na sincronização manual do ranking de lojas")
		}
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *StoreRankingSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
