package handler

import (
	"net/http"

	"github.com/vfg2006/field-sales-api/internal/api/handler/router"
	"github.com/vfg2006/field-sales-api/internal/usecases/authenticating"
	"github.com/vfg2006/field-sales-api/internal/usecases/catalog"
	"github.com/vfg2006/field-sales-api/internal/usecases/ordering"
	"github.com/vfg2006/field-sales-api/internal/usecases/ranking"
	"github.com/vfg2006/field-sales-api/internal/usecases/reporting"
	"github.com/vfg2006/field-sales-api/internal/usecases/visiting"
	"github.com/vfg2006/field-sales-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Orders(service ordering.OrderManager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/orders",
			Method:      http.MethodPost,
			Handler:     CreateOrder(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/orders",
			Method:      http.MethodGet,
			Handler:     ListOrders(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/orders/:id",
			Method:      http.MethodGet,
			Handler:     GetOrder(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/orders/:id/confirm",
			Method:      http.MethodPost,
			Handler:     ConfirmOrder(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func FieldVisits(service visiting.VisitRecorder) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/field-visits",
			Method:      http.MethodPost,
			Handler:     CreateFieldVisit(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/field-visits",
			Method:      http.MethodGet,
			Handler:     ListFieldVisits(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/field-visits/:id/checkout",
			Method:      http.MethodPost,
			Handler:     CheckOutFieldVisit(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Catalog(service catalog.Catalog, reporter reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/stores",
			Method:      http.MethodGet,
			Handler:     GetStores(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales-reps",
			Method:      http.MethodGet,
			Handler:     GetSalesReps(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales-reps/:id/performance",
			Method:      http.MethodGet,
			Handler:     GetSalesRepPerformance(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/reports/orders",
			Method:      http.MethodGet,
			Handler:     GetOrderReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func StoreRanking(service ranking.RankingService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/stores/ranking",
			Method:      http.MethodGet,
			Handler:     GetStoreRanking(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
