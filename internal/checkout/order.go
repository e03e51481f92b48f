package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nikolayk812/shopcart/internal/cart"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrUnassignedItems = errors.New("cart has items without a shop")
	ErrMissingAddress  = errors.New("shipping address is empty")
	ErrMissingPhone    = errors.New("contact phone is empty")
)

type ShippingDetails struct {
	Address string
	Phone   string
}

// BuildOrder turns the current cart contents into an order with one
// sub-order per shop. The cart is only read.
func BuildOrder(c *cart.Cart, details ShippingDetails) (domain.Order, error) {
	address := strings.TrimSpace(details.Address)
	if address == "" {
		return domain.Order{}, ErrMissingAddress
	}

	phone := strings.TrimSpace(details.Phone)
	if phone == "" {
		return domain.Order{}, ErrMissingPhone
	}

	if c.IsEmpty() {
		return domain.Order{}, ErrEmptyCart
	}

	groups := c.GroupByShop()
	if g, ok := groups.Unassigned(); ok {
		return domain.Order{}, fmt.Errorf("%w: %d line item(s)", ErrUnassignedItems, len(g.Items))
	}

	order := domain.Order{
		ShippingAddress: address,
		ContactPhone:    phone,
		TotalPrice:      decimal.Zero,
		SubOrders:       make([]domain.SubOrder, 0, groups.Len()),
	}

	for _, g := range groups {
		sub := newSubOrder(g)
		order.SubOrders = append(order.SubOrders, sub)
		order.TotalPrice = order.TotalPrice.Add(sub.SubTotal)
	}

	if total := c.TotalPrice(); !order.TotalPrice.Equal(total) {
		return domain.Order{}, fmt.Errorf("order total %s does not match cart total %s", order.TotalPrice, total)
	}

	return order, nil
}

func newSubOrder(g domain.ShopGroup) domain.SubOrder {
	sub := domain.SubOrder{
		ShopID:   g.Shop.ID,
		ShopName: g.DisplayName(),
		Products: make([]domain.OrderLine, 0, len(g.Items)),
		SubTotal: decimal.Zero,
		Status:   domain.OrderStatusPending,
	}

	for _, item := range g.Items {
		sub.Products = append(sub.Products, domain.OrderLine{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
		})
		sub.SubTotal = sub.SubTotal.Add(item.Subtotal())
	}

	return sub
}
