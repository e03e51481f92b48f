package port

import (
	"context"

	"github.com/nikolayk812/shopcart/internal/domain"
)

// CartStore keeps cart snapshots between sessions of the same owner.
type CartStore interface {
	LoadCart(ctx context.Context, ownerID string) ([]domain.LineItem, error)
	SaveCart(ctx context.Context, ownerID string, items []domain.LineItem) error
	DeleteCart(ctx context.Context, ownerID string) (bool, error)
}
