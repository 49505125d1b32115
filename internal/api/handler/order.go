package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/field-sales-api/internal/domain"
	"github.com/vfg2006/field-sales-api/internal/usecases/ordering"
	"github.com/vfg2006/field-sales-api/pkg/apiErrors"
	"github.com/vfg2006/field-sales-api/pkg/log"
)

type ConfirmOrderRequest struct {
	Approve     *bool   `json:"approve"`
	AdminNotes  *string `json:"admin_notes"`
	ConfirmedBy *string `json:"confirmed_by"`
}

func CreateOrder(service ordering.OrderManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CreateOrder")

		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		var input ordering.CreateOrderInput
		if !decodeBody(w, r, &input) {
			return
		}

		salesRepID, ok := actingSalesRep(w, claims, &input.SalesRepID)
		if !ok {
			return
		}
		input.SalesRepID = *salesRepID

		result, err := service.CreateOrder(r.Context(), input)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusCreated, result.Order, result.Message)
	}
}

func ListOrders(service ordering.OrderManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - ListOrders")

		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		salesRepID, ok := actingSalesRep(w, claims, optionalQuery(r, "sales_rep_id"))
		if !ok {
			return
		}

		requiresConfirmation, ok := optionalBoolQuery(w, r, "requires_confirmation")
		if !ok {
			return
		}

		orders, err := service.ListOrders(r.Context(), ordering.ListOrdersInput{
			SalesRepID:           salesRepID,
			StoreID:              optionalQuery(r, "store_id"),
			Status:               optionalQuery(r, "status"),
			RequiresConfirmation: requiresConfirmation,
			Search:               r.URL.Query().Get("search"),
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, orders, "")
	}
}

// GetOrder esconde do vendedor os pedidos de outros vendedores
func GetOrder(service ordering.OrderManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		order, err := service.GetOrder(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		if claims.IsSales() && !sameSalesRep(claims.SalesRepID, order.SalesRepID) {
			writeServiceError(w, r, domain.NewNotFoundError("Pedido", id))
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, order, "")
	}
}

// ConfirmOrder usa o nome do usuário logado como confirmed_by; só o administrador pode informar outro nome
func ConfirmOrder(service ordering.OrderManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - ConfirmOrder")

		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		var req ConfirmOrderRequest
		if !decodeBody(w, r, &req) {
			return
		}

		confirmedBy := claims.UserName
		if claims.UserRoleID == domain.RoleAdmin && req.ConfirmedBy != nil && strings.TrimSpace(*req.ConfirmedBy) != "" {
			confirmedBy = *req.ConfirmedBy
		}

		result, err := service.ConfirmOrder(r.Context(), ordering.ConfirmOrderInput{
			OrderID:     httprouter.ParamsFromContext(r.Context()).ByName("id"),
			Approve:     req.Approve,
			AdminNotes:  req.AdminNotes,
			ConfirmedBy: confirmedBy,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, result.Order, result.Message)
	}
}
