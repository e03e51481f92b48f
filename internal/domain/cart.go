package domain

import (
	"github.com/shopspring/decimal"
)

type LineItem struct {
	Product  Product
	Quantity int
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
