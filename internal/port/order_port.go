package port

import (
	"context"

	"github.com/nikolayk812/shopcart/internal/domain"
)

type OrderClient interface {
	CreateOrder(ctx context.Context, token, idempotencyKey string, order domain.Order) (domain.OrderReceipt, error)
}
