package handler

import (
	"net/http"

	"github.com/vfg2006/field-sales-api/internal/usecases/ranking"
	"github.com/vfg2006/field-sales-api/pkg/apiErrors"
)

// GetStoreRanking retorna o snapshot do ranking de lojas do mês (mm-yyyy, padrão mês atual)
func GetStoreRanking(service ranking.RankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeRanking, err := service.GetStoreRanking(r.Context(), r.URL.Query().Get("month"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, storeRanking, "")
	}
}
