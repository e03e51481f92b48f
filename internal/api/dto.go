package api

import (
	"encoding/json"

	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderRequest struct {
	ShippingAddress string            `json:"shipping_address"`
	ContactPhone    string            `json:"contact_phone"`
	TotalPrice      json.Number       `json:"total_price"`
	SubOrders       []SubOrderRequest `json:"sub_orders"`
}

type SubOrderRequest struct {
	ShopID   string             `json:"shop_id"`
	ShopName string             `json:"shop_name"`
	Products []OrderLineRequest `json:"products"`
	SubTotal json.Number        `json:"sub_total"`
	Status   domain.OrderStatus `json:"status"`
}

type OrderLineRequest struct {
	ProductID string      `json:"product_id"`
	Name      string      `json:"name"`
	Price     json.Number `json:"price"`
	Quantity  int         `json:"quantity"`
}

type OrderResponse struct {
	ID      string `json:"_id"`
	AltID   string `json:"id"`
	Message string `json:"message"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func NewOrderRequest(order domain.Order) OrderRequest {
	subOrders := make([]SubOrderRequest, 0, len(order.SubOrders))
	for _, so := range order.SubOrders {
		lines := make([]OrderLineRequest, 0, len(so.Products))
		for _, line := range so.Products {
			lines = append(lines, OrderLineRequest{
				ProductID: line.ProductID,
				Name:      line.Name,
				Price:     number(line.Price),
				Quantity:  line.Quantity,
			})
		}

		subOrders = append(subOrders, SubOrderRequest{
			ShopID:   so.ShopID,
			ShopName: so.ShopName,
			Products: lines,
			SubTotal: number(so.SubTotal),
			Status:   so.Status,
		})
	}

	return OrderRequest{
		ShippingAddress: order.ShippingAddress,
		ContactPhone:    order.ContactPhone,
		TotalPrice:      number(order.TotalPrice),
		SubOrders:       subOrders,
	}
}

func (r OrderResponse) toDomain() domain.OrderReceipt {
	id := r.ID
	if id == "" {
		id = r.AltID
	}
	return domain.OrderReceipt{OrderID: id, Message: r.Message}
}

// number renders d as a JSON number literal without going through float64.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
