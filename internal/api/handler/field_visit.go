package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/field-sales-api/internal/domain"
	"github.com/vfg2006/field-sales-api/internal/usecases/visiting"
	"github.com/vfg2006/field-sales-api/pkg/apiErrors"
	"github.com/vfg2006/field-sales-api/pkg/log"
)

type CheckOutRequest struct {
	Result *string `json:"result"`
}

func CreateFieldVisit(service visiting.VisitRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CreateFieldVisit")

		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		var input visiting.CreateFieldVisitInput
		if !decodeBody(w, r, &input) {
			return
		}

		salesRepID, ok := actingSalesRep(w, claims, &input.SalesRepID)
		if !ok {
			return
		}
		input.SalesRepID = *salesRepID

		result, err := service.CreateFieldVisit(r.Context(), input)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusCreated, result.Visit, result.Message)
	}
}

func CheckOutFieldVisit(service visiting.VisitRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CheckOutFieldVisit")

		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		var owner *string
		if claims.IsSales() {
			if owner, ok = actingSalesRep(w, claims, nil); !ok {
				return
			}
		}

		var req CheckOutRequest
		if r.ContentLength != 0 && !decodeBody(w, r, &req) {
			return
		}

		result, err := service.CheckOutFieldVisit(r.Context(), visiting.CheckOutInput{
			VisitID:    httprouter.ParamsFromContext(r.Context()).ByName("id"),
			Result:     req.Result,
			SalesRepID: owner,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, result.Visit, result.Message)
	}
}

func ListFieldVisits(service visiting.VisitRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		salesRepID, ok := actingSalesRep(w, claims, optionalQuery(r, "sales_rep_id"))
		if !ok {
			return
		}

		visits, err := service.ListFieldVisits(r.Context(), domain.FieldVisitFilter{SalesRepID: salesRepID})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, visits, "")
	}
}
