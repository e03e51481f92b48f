package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type ShopRef struct {
	ID       string
	Name     string
	Category string
}

// Product is the catalog snapshot taken when the product is put in a cart.
// Shop is nil when the catalog returned the product without shop data.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	ImageURLs []string
	Shop      *ShopRef
}

func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product ID is empty")
	}

	if p.Price.IsNegative() {
		return fmt.Errorf("product[%s] price is negative: %s", p.ID, p.Price)
	}

	return nil
}

func (p Product) HasShop() bool {
	return p.Shop != nil && p.Shop.ID != ""
}
