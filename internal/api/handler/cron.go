package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/field-sales-api/pkg/apiErrors"
	"github.com/vfg2006/field-sales-api/pkg/log"
)

const CronJobTypeStoreRanking = "store-ranking"

// CronJob é o que o handler precisa de cada serviço agendado
type CronJob interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// CronJobServices mapeia o tipo da rota para o serviço agendado
type CronJobServices map[string]CronJob

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		job, exists := services[cronType]
		if !exists || job == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: store-ranking", nil)
			return
		}

		started := job.TriggerManualSync(r.Context())

		message := "Cron job iniciada com sucesso"
		if !started {
			message = "Cron job já está em execução"
		}

		apiErrors.WriteSuccess(w, http.StatusAccepted, map[string]any{"type": cronType, "started": started}, message)
	}
}

func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for name, job := range services {
			if job != nil {
				status[name] = job.GetStatus()
			}
		}

		apiErrors.WriteSuccess(w, http.StatusOK, status, "")
	}
}
