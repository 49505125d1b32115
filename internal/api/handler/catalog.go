package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/field-sales-api/internal/usecases/catalog"
	"github.com/vfg2006/field-sales-api/internal/usecases/reporting"
	"github.com/vfg2006/field-sales-api/pkg/apiErrors"
)

func GetStores(service catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, err := service.GetStores(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, stores, "")
	}
}

func GetSalesReps(service catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reps, err := service.GetSalesReps(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, reps, "")
	}
}

// GetSalesRepPerformance permite ao vendedor consultar apenas o próprio desempenho
func GetSalesRepPerformance(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if claims.IsSales() && (claims.SalesRepID == nil || *claims.SalesRepID != id) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Vendedores só podem consultar o próprio desempenho", nil)
			return
		}

		performance, err := service.SalesRepPerformance(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, performance, "")
	}
}
