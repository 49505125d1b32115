package handler

import (
	"net/http"

	"github.com/vfg2006/field-sales-api/internal/domain"
	"github.com/vfg2006/field-sales-api/internal/usecases/reporting"
	"github.com/vfg2006/field-sales-api/pkg/apiErrors"
	"github.com/vfg2006/field-sales-api/pkg/log"
)

func GetDashboard(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - GetDashboard")

		stats, err := service.Dashboard(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, stats, "")
	}
}

func GetOrderReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - GetOrderReport")

		report, err := service.OrderReport(r.Context(), domain.ReportFilter{
			Period:  domain.ReportPeriod(r.URL.Query().Get("period")),
			StoreID: optionalQuery(r, "store_id"),
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, report, "")
	}
}
