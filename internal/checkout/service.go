// Package checkout builds orders from a session cart and submits them to
// the marketplace API.
package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcart/internal/auth"
	"github.com/nikolayk812/shopcart/internal/cart"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
	"go.uber.org/zap"
)

// CartAccess runs fn with exclusive access to the cart of one session.
type CartAccess interface {
	Do(ownerID string, fn func(c *cart.Cart) error) error
}

type Service struct {
	orders port.OrderClient
	tokens *auth.Checker
	carts  CartAccess
	newKey func() string
	logger *zap.Logger
}

func NewService(orders port.OrderClient, tokens *auth.Checker, carts CartAccess, logger *zap.Logger) *Service {
	return &Service{
		orders: orders,
		tokens: tokens,
		carts:  carts,
		newKey: uuid.NewString,
		logger: logger,
	}
}

// Checkout submits the cart of ownerID as an order. Only when the API accepted
// the order are the ordered quantities taken out of the cart; items added while
// the order was in flight stay. On any error the cart is left as it was.
func (s *Service) Checkout(ctx context.Context, ownerID, token string, details ShippingDetails) (domain.OrderReceipt, error) {
	claims, err := s.tokens.Check(token)
	if err != nil {
		return domain.OrderReceipt{}, fmt.Errorf("tokens.Check: %w", err)
	}

	var order domain.Order
	err = s.carts.Do(ownerID, func(c *cart.Cart) error {
		order, err = BuildOrder(c, details)
		return err
	})
	if err != nil {
		return domain.OrderReceipt{}, fmt.Errorf("carts.Do: %w", err)
	}

	key := s.newKey()
	logger := s.logger.With(
		zap.String("owner_id", ownerID),
		zap.String("subject", claims.Subject),
		zap.String("idempotency_key", key),
	)

	receipt, err := s.orders.CreateOrder(ctx, token, key, order)
	if err != nil {
		logger.Warn("order submission failed, cart kept", zap.Error(err))
		return domain.OrderReceipt{}, fmt.Errorf("orders.CreateOrder: %w", err)
	}

	err = s.carts.Do(ownerID, func(c *cart.Cart) error {
		settle(c, order)
		return nil
	})
	if err != nil {
		return receipt, fmt.Errorf("carts.Do: %w", err)
	}

	logger.Info("order submitted",
		zap.String("order_id", receipt.OrderID),
		zap.Int("sub_orders", len(order.SubOrders)),
		zap.String("total_price", order.TotalPrice.String()),
	)

	return receipt, nil
}

// settle removes the ordered quantities from the cart. A line whose quantity
// grew after the order was built keeps the difference.
func settle(c *cart.Cart, order domain.Order) {
	for _, sub := range order.SubOrders {
		for _, line := range sub.Products {
			item, ok := c.Item(line.ProductID)
			if !ok {
				continue
			}
			c.UpdateQuantity(line.ProductID, item.Quantity-line.Quantity)
		}
	}
}
