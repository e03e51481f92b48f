package domain

import (
	"github.com/shopspring/decimal"
)

type GroupKind int

const (
	GroupShop GroupKind = iota
	GroupUnassigned
)

// UnassignedShopName labels the group of line items whose product carries no shop.
const UnassignedShopName = "Boutique inconnue"

type ShopGroup struct {
	Kind  GroupKind
	Shop  ShopRef
	Items []LineItem
}

func (g ShopGroup) IsUnassigned() bool {
	return g.Kind == GroupUnassigned
}

func (g ShopGroup) DisplayName() string {
	if g.IsUnassigned() {
		return UnassignedShopName
	}
	return g.Shop.Name
}

func (g ShopGroup) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range g.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (g ShopGroup) ItemCount() int {
	var count int
	for _, item := range g.Items {
		count += item.Quantity
	}
	return count
}

// ShopGroups keeps groups in the order their shop was first seen in the cart.
type ShopGroups []ShopGroup

func (gs ShopGroups) Len() int {
	return len(gs)
}

func (gs ShopGroups) Find(shopID string) (ShopGroup, bool) {
	for _, g := range gs {
		if !g.IsUnassigned() && g.Shop.ID == shopID {
			return g, true
		}
	}
	return ShopGroup{}, false
}

func (gs ShopGroups) Unassigned() (ShopGroup, bool) {
	for _, g := range gs {
		if g.IsUnassigned() {
			return g, true
		}
	}
	return ShopGroup{}, false
}

// LineItemCount is the number of distinct line items across all groups.
func (gs ShopGroups) LineItemCount() int {
	var count int
	for _, g := range gs {
		count += len(g.Items)
	}
	return count
}
