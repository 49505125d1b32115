package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/field-sales-api/internal/api/handler/router"
	"github.com/vfg2006/field-sales-api/internal/domain"
	"github.com/vfg2006/field-sales-api/internal/usecases/ordering"
	"github.com/vfg2006/field-sales-api/pkg/middleware"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type fakeOrders struct {
	created   ordering.CreateOrderInput
	confirmed ordering.ConfirmOrderInput
	listed    ordering.ListOrdersInput
	err       error
}

func (f *fakeOrders) CreateOrder(_ context.Context, input ordering.CreateOrderInput) (*ordering.Result, error) {
	f.created = input
	if f.err != nil {
		return nil, f.err
	}
	return &ordering.Result{Order: &domain.Order{ID: "o1"}, Message: "Pedido criado com sucesso!"}, nil
}

func (f *fakeOrders) ConfirmOrder(_ context.Context, input ordering.ConfirmOrderInput) (*ordering.Result, error) {
	f.confirmed = input
	if f.err != nil {
		return nil, f.err
	}
	return &ordering.Result{Order: &domain.Order{ID: input.OrderID}, Message: "Pedido confirmado com sucesso!"}, nil
}

func (f *fakeOrders) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	owner := "rep-other"
	if strings.HasPrefix(id, "order-budi") {
		owner = "rep-budi"
	}
	return &domain.Order{ID: id, SalesRepID: &owner}, nil
}

func (f *fakeOrders) ListOrders(_ context.Context, input ordering.ListOrdersInput) ([]*domain.Order, error) {
	f.listed = input
	return []*domain.Order{}, f.err
}

func ptr[T any](v T) *T { return &v }

var (
	admin = &domain.Claims{UserID: 1, UserName: "Admin", UserRoleID: domain.RoleAdmin}
	sales = &domain.Claims{UserID: 3, UserName: "Budi", UserRoleID: domain.RoleSales, SalesRepID: ptr("rep-budi")}
)

func serve(routes []router.Route, claims *domain.Claims, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	rt := router.New(router.WithRoutes(routes...))

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if claims != nil {
		req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
	}

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func dataField(env envelope, key string) any {
	data, _ := env.Data.(map[string]any)
	return data[key]
}

func TestCreateOrderHandler(t *testing.T) {
	t.Run("vendedor fica preso ao próprio vendedor", func(t *testing.T) {
		orders := &fakeOrders{}

		rec, env := serve(Orders(orders), sales, http.MethodPost, "/v1/orders",
			`{"sales_rep_id":"rep-outro","store_id":"s1","customer_name":"Siti","items":[{"product_name":"Sabun","quantity":1,"price":"1000"}]}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "Pedido criado com sucesso!", env.Message)
		assert.Equal(t, "rep-budi", orders.created.SalesRepID)
		require.Len(t, orders.created.Items, 1)
	})

	t.Run("administrador escolhe o vendedor", func(t *testing.T) {
		orders := &fakeOrders{}

		rec, _ := serve(Orders(orders), admin, http.MethodPost, "/v1/orders", `{"sales_rep_id":"rep-2"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "rep-2", orders.created.SalesRepID)
	})

	t.Run("vendedor sem vínculo", func(t *testing.T) {
		orders := &fakeOrders{}

		rec, env := serve(Orders(orders), &domain.Claims{UserRoleID: domain.RoleSales}, http.MethodPost, "/v1/orders", `{}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "AUTH_008", env.Error.Code)
	})

	t.Run("corpo inválido", func(t *testing.T) {
		rec, env := serve(Orders(&fakeOrders{}), admin, http.MethodPost, "/v1/orders", `{"items":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VAL_001", env.Error.Code)
	})

	t.Run("erro de validação com campos", func(t *testing.T) {
		orders := &fakeOrders{err: domain.NewValidationError("dados do pedido inválidos", map[string]string{"items[0].quantity": "gt"})}

		rec, env := serve(Orders(orders), admin, http.MethodPost, "/v1/orders", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "VAL_003", env.Error.Code)
		assert.Equal(t, "gt", env.Error.Details["items[0].quantity"])
	})

	t.Run("lock indisponível", func(t *testing.T) {
		orders := &fakeOrders{err: domain.NewLockUnavailableError("store:toko x")}

		rec, env := serve(Orders(orders), admin, http.MethodPost, "/v1/orders", `{}`)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "SRV_005", env.Error.Code)
	})
}

func TestListOrdersHandler(t *testing.T) {
	t.Run("filtros da query", func(t *testing.T) {
		orders := &fakeOrders{}

		rec, _ := serve(Orders(orders), admin, http.MethodGet, "/v1/orders?status=new&requires_confirmation=true&search=sabun&store_id=s1", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, orders.listed.SalesRepID)
		assert.Equal(t, "new", *orders.listed.Status)
		assert.True(t, *orders.listed.RequiresConfirmation)
		assert.Equal(t, "sabun", orders.listed.Search)
		assert.Equal(t, "s1", *orders.listed.StoreID)
	})

	t.Run("booleano inválido", func(t *testing.T) {
		rec, env := serve(Orders(&fakeOrders{}), admin, http.MethodGet, "/v1/orders?requires_confirmation=talvez", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "boolean", env.Error.Details["requires_confirmation"])
	})

	t.Run("vendedor só vê os próprios pedidos", func(t *testing.T) {
		orders := &fakeOrders{}

		serve(Orders(orders), sales, http.MethodGet, "/v1/orders?sales_rep_id=rep-outro", "")

		assert.Equal(t, "rep-budi", *orders.listed.SalesRepID)
	})
}

func TestGetOrderHandler(t *testing.T) {
	t.Run("pedido inexistente", func(t *testing.T) {
		rec, env := serve(Orders(&fakeOrders{err: domain.NewNotFoundError("Pedido", "o9")}), admin, http.MethodGet, "/v1/orders/o9", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "RES_001", env.Error.Code)
	})

	t.Run("vendedor lê o próprio pedido", func(t *testing.T) {
		rec, env := serve(Orders(&fakeOrders{}), sales, http.MethodGet, "/v1/orders/order-budi-1", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "order-budi-1", dataField(env, "id"))
	})

	t.Run("vendedor não lê pedido de outro vendedor", func(t *testing.T) {
		rec, env := serve(Orders(&fakeOrders{}), sales, http.MethodGet, "/v1/orders/order-of-rep-other", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "RES_001", env.Error.Code)
		assert.Nil(t, env.Data)
	})

	t.Run("administrador lê qualquer pedido", func(t *testing.T) {
		rec, _ := serve(Orders(&fakeOrders{}), admin, http.MethodGet, "/v1/orders/order-of-rep-other", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestConfirmOrderHandler(t *testing.T) {
	t.Run("supervisor usa o próprio nome", func(t *testing.T) {
		orders := &fakeOrders{}
		supervisor := &domain.Claims{UserID: 2, UserName: "Sari", UserRoleID: domain.RoleSupervisor}

		rec, env := serve(Orders(orders), supervisor, http.MethodPost, "/v1/orders/o1/confirm", `{"approve":true,"confirmed_by":"Outro"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Pedido confirmado com sucesso!", env.Message)
		assert.Equal(t, "o1", orders.confirmed.OrderID)
		assert.Equal(t, "Sari", orders.confirmed.ConfirmedBy)
		assert.True(t, *orders.confirmed.Approve)
	})

	t.Run("administrador pode informar o nome", func(t *testing.T) {
		orders := &fakeOrders{}

		serve(Orders(orders), admin, http.MethodPost, "/v1/orders/o1/confirm", `{"approve":false,"confirmed_by":"Gudang","admin_notes":"sem estoque"}`)

		assert.Equal(t, "Gudang", orders.confirmed.ConfirmedBy)
		assert.Equal(t, "sem estoque", *orders.confirmed.AdminNotes)
	})

	t.Run("vendedor não confirma", func(t *testing.T) {
		orders := &fakeOrders{}

		rec, env := serve(Orders(orders), sales, http.MethodPost, "/v1/orders/o1/confirm", `{"approve":true}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "AUTH_008", env.Error.Code)
		assert.Empty(t, orders.confirmed.OrderID)
	})

	t.Run("pedido fora de aguardando confirmação", func(t *testing.T) {
		orders := &fakeOrders{err: domain.NewInvalidTransitionError("pedido não está aguardando confirmação")}

		rec, env := serve(Orders(orders), admin, http.MethodPost, "/v1/orders/o1/confirm", `{"approve":true}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "ORD_001", env.Error.Code)
	})
}
