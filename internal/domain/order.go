package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusNew                 OrderStatus = "NEW"
	OrderStatusPendingConfirmation OrderStatus = "PENDING_CONFIRMATION"
	OrderStatusInProcess           OrderStatus = "IN_PROCESS"
	OrderStatusCompleted           OrderStatus = "COMPLETED"
	OrderStatusCanceled            OrderStatus = "CANCELED"
)

// OrderStatuses é a enumeração fechada, na ordem usada pelos relatórios
var OrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusPendingConfirmation,
	OrderStatusInProcess,
	OrderStatusCompleted,
	OrderStatusCanceled,
}

func (s OrderStatus) IsValid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	ID                   string               `json:"id"`
	CustomerID           string               `json:"customer_id"`
	Customer             *Customer            `json:"customer,omitempty"`
	StoreID              string               `json:"store_id"`
	Store                *Store               `json:"store,omitempty"`
	SalesRepID           *string              `json:"sales_rep_id,omitempty"`
	SalesRep             *SalesRepresentative `json:"sales_rep,omitempty"`
	Items                []OrderItem          `json:"items"`
	TotalAmount          decimal.Decimal      `json:"total_amount"`
	Status               OrderStatus          `json:"status"`
	OrderDate            time.Time            `json:"order_date"`
	Notes                *string              `json:"notes,omitempty"`
	AdminNotes           *string              `json:"admin_notes,omitempty"`
	RequiresConfirmation bool                 `json:"requires_confirmation"`
	ConfirmedAt          *time.Time           `json:"confirmed_at,omitempty"`
	ConfirmedBy          *string              `json:"confirmed_by,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// OrderItem é imutável depois de criado junto com o pedido
type OrderItem struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// LineTotal calcula quantity * price
func LineTotal(quantity int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// SumItems soma o total de cada item
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item.Quantity, item.Price))
	}
	return total
}

type OrderFilter struct {
	SalesRepID           *string
	StoreID              *string
	Status               *OrderStatus
	RequiresConfirmation *bool
}

// OrderConfirmation é a decisão do administrador sobre um pedido pendente
type OrderConfirmation struct {
	OrderID     string
	Status      OrderStatus
	AdminNotes  *string
	ConfirmedBy string
	ConfirmedAt time.Time
}
