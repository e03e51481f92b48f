package domain_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name      string
		product   domain.Product
		wantError string
	}{
		{
			name:    "valid product: ok",
			product: domain.Product{ID: "p1", Price: decimal.NewFromInt(10)},
		},
		{
			name:    "zero price: ok",
			product: domain.Product{ID: "p1", Price: decimal.Zero},
		},
		{
			name:      "empty ID: error",
			product:   domain.Product{Price: decimal.NewFromInt(10)},
			wantError: "product ID is empty",
		},
		{
			name:      "negative price: error",
			product:   domain.Product{ID: "p1", Price: decimal.NewFromInt(-1)},
			wantError: "product[p1] price is negative: -1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestShopGroup(t *testing.T) {
	shop := domain.ShopRef{ID: gofakeit.UUID(), Name: gofakeit.Company()}
	items := []domain.LineItem{
		{Product: domain.Product{ID: "a", Price: decimal.NewFromInt(500)}, Quantity: 3},
		{Product: domain.Product{ID: "b", Price: decimal.NewFromInt(1500)}, Quantity: 1},
	}

	g := domain.ShopGroup{Kind: domain.GroupShop, Shop: shop, Items: items}
	assert.False(t, g.IsUnassigned())
	assert.Equal(t, shop.Name, g.DisplayName())
	assert.Equal(t, 4, g.ItemCount())
	assert.True(t, decimal.NewFromInt(3000).Equal(g.Subtotal()))

	u := domain.ShopGroup{Kind: domain.GroupUnassigned, Items: items[:1]}
	assert.True(t, u.IsUnassigned())
	assert.Equal(t, domain.UnassignedShopName, u.DisplayName())

	groups := domain.ShopGroups{g, u}
	_, ok := groups.Find("")
	assert.False(t, ok, "unassigned group must not match an empty shop ID")
	found, ok := groups.Find(shop.ID)
	require.True(t, ok)
	assert.Equal(t, shop.ID, found.Shop.ID)
	assert.Equal(t, 3, groups.LineItemCount())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from domain.OrderStatus
		to   domain.OrderStatus
		want bool
	}{
		{domain.OrderStatusPending, domain.OrderStatusConfirmed, true},
		{domain.OrderStatusPending, domain.OrderStatusCancelled, true},
		{domain.OrderStatusPending, domain.OrderStatusShipped, false},
		{domain.OrderStatusConfirmed, domain.OrderStatusShipped, true},
		{domain.OrderStatusShipped, domain.OrderStatusDelivered, true},
		{domain.OrderStatusDelivered, domain.OrderStatusCancelled, false},
		{domain.OrderStatusCancelled, domain.OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+" -> "+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.True(t, domain.OrderStatusPending.IsValid())
	assert.False(t, domain.OrderStatus("pending").IsValid())
}
