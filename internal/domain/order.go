package domain

import (
	"github.com/shopspring/decimal"
)

// OrderStatus values are the literals the marketplace API stores.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "En attente"
	OrderStatusConfirmed OrderStatus = "Confirmée"
	OrderStatusShipped   OrderStatus = "Expédiée"
	OrderStatusDelivered OrderStatus = "Livrée"
	OrderStatusCancelled OrderStatus = "Annulée"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether a merchant may move a sub-order from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusConfirmed || next == OrderStatusCancelled
	case OrderStatusConfirmed:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	default:
		return false
	}
}

type OrderLine struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

type SubOrder struct {
	ShopID   string
	ShopName string
	Products []OrderLine
	SubTotal decimal.Decimal
	Status   OrderStatus
}

type Order struct {
	ShippingAddress string
	ContactPhone    string
	TotalPrice      decimal.Decimal
	SubOrders       []SubOrder
}

type OrderReceipt struct {
	OrderID string
	Message string
}
