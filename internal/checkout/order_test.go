package checkout_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/shopcart/internal/cart"
	"github.com/nikolayk812/shopcart/internal/checkout"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

var xof = currency.MustParseISO("XOF")

func TestBuildOrder(t *testing.T) {
	c := scenarioCart()

	order, err := checkout.BuildOrder(c, checkout.ShippingDetails{
		Address: "  12 rue du Marché, Dakar ",
		Phone:   "+221770000000",
	})
	require.NoError(t, err)

	want := domain.Order{
		ShippingAddress: "12 rue du Marché, Dakar",
		ContactPhone:    "+221770000000",
		TotalPrice:      decimal.NewFromInt(5000),
		SubOrders: []domain.SubOrder{
			{
				ShopID:   "S1",
				ShopName: "Boutique Un",
				Products: []domain.OrderLine{
					{ProductID: "A", Name: "Savon", Price: decimal.NewFromInt(500), Quantity: 3},
					{ProductID: "B", Name: "Huile", Price: decimal.NewFromInt(1500), Quantity: 1},
				},
				SubTotal: decimal.NewFromInt(3000),
				Status:   domain.OrderStatusPending,
			},
			{
				ShopID:   "S2",
				ShopName: "Boutique Deux",
				Products: []domain.OrderLine{
					{ProductID: "C", Name: "Riz", Price: decimal.NewFromInt(2000), Quantity: 1},
				},
				SubTotal: decimal.NewFromInt(2000),
				Status:   domain.OrderStatusPending,
			},
		},
	}

	assert.Empty(t, cmp.Diff(want, order))
	assert.True(t, c.TotalPrice().Equal(order.TotalPrice))

	// building the order does not touch the cart
	assert.Equal(t, 5, c.ItemCount())
}

func TestBuildOrder_Errors(t *testing.T) {
	valid := checkout.ShippingDetails{Address: "Dakar", Phone: "+221770000000"}

	withUnassigned := scenarioCart()
	withUnassigned.AddItem(domain.Product{ID: "X", Name: "Sans boutique", Price: decimal.NewFromInt(10)})

	tests := []struct {
		name    string
		cart    *cart.Cart
		details checkout.ShippingDetails
		wantErr error
	}{
		{
			name:    "empty cart: error",
			cart:    cart.New(xof),
			details: valid,
			wantErr: checkout.ErrEmptyCart,
		},
		{
			name:    "item without shop: error",
			cart:    withUnassigned,
			details: valid,
			wantErr: checkout.ErrUnassignedItems,
		},
		{
			name:    "blank address: error",
			cart:    scenarioCart(),
			details: checkout.ShippingDetails{Address: "   ", Phone: valid.Phone},
			wantErr: checkout.ErrMissingAddress,
		},
		{
			name:    "blank phone: error",
			cart:    scenarioCart(),
			details: checkout.ShippingDetails{Address: valid.Address},
			wantErr: checkout.ErrMissingPhone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := checkout.BuildOrder(tt.cart, tt.details)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func scenarioCart() *cart.Cart {
	s1 := &domain.ShopRef{ID: "S1", Name: "Boutique Un"}
	s2 := &domain.ShopRef{ID: "S2", Name: "Boutique Deux"}

	c := cart.New(xof)
	c.AddItem(domain.Product{ID: "A", Name: "Savon", Price: decimal.NewFromInt(500), Shop: s1})
	c.AddItem(domain.Product{ID: "B", Name: "Huile", Price: decimal.NewFromInt(1500), Shop: s1})
	c.AddItem(domain.Product{ID: "C", Name: "Riz", Price: decimal.NewFromInt(2000), Shop: s2})
	c.UpdateQuantity("A", 3)

	return c
}
