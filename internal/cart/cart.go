// Package cart holds the shopping cart of a single session: line items keyed
// by product ID, kept in the order they were first added.
//
// A Cart is not safe for concurrent use. Totals and groupings are derived
// from the line items on every call.
package cart

import (
	"slices"

	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Cart struct {
	currency currency.Unit

	order []string
	items map[string]*domain.LineItem
}

func New(cur currency.Unit) *Cart {
	return &Cart{
		currency: cur,
		items:    make(map[string]*domain.LineItem),
	}
}

func (c *Cart) Currency() currency.Unit {
	return c.currency
}

// AddItem adds one unit of the product. When the product is already in the
// cart only its quantity changes: the snapshot stored by the first add is kept.
func (c *Cart) AddItem(product domain.Product) {
	if item, ok := c.items[product.ID]; ok {
		item.Quantity++
		return
	}

	c.items[product.ID] = &domain.LineItem{
		Product:  cloneProduct(product),
		Quantity: 1,
	}
	c.order = append(c.order, product.ID)
}

func (c *Cart) RemoveItem(productID string) {
	if _, ok := c.items[productID]; !ok {
		return
	}

	delete(c.items, productID)

	if i := slices.Index(c.order, productID); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}

// UpdateQuantity sets the quantity of a line item. A quantity below one
// removes the line item. Unknown product IDs are ignored.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	item, ok := c.items[productID]
	if !ok {
		return
	}

	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}

	item.Quantity = quantity
}

func (c *Cart) Clear() {
	c.order = nil
	c.items = make(map[string]*domain.LineItem)
}

// Restore replaces the cart contents with previously saved line items.
// Items with a non-positive quantity are dropped and repeated product IDs are merged.
func (c *Cart) Restore(items []domain.LineItem) {
	c.Clear()

	for _, item := range items {
		if item.Quantity <= 0 || item.Product.ID == "" {
			continue
		}

		if existing, ok := c.items[item.Product.ID]; ok {
			existing.Quantity += item.Quantity
			continue
		}

		c.items[item.Product.ID] = &domain.LineItem{
			Product:  cloneProduct(item.Product),
			Quantity: item.Quantity,
		}
		c.order = append(c.order, item.Product.ID)
	}
}

func (c *Cart) Len() int {
	return len(c.order)
}

func (c *Cart) IsEmpty() bool {
	return len(c.order) == 0
}

func (c *Cart) Item(productID string) (domain.LineItem, bool) {
	item, ok := c.items[productID]
	if !ok {
		return domain.LineItem{}, false
	}
	return copyItem(*item), true
}

// Items returns a copy of the line items in display order.
func (c *Cart) Items() []domain.LineItem {
	result := make([]domain.LineItem, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, copyItem(*c.items[id]))
	}
	return result
}

func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (c *Cart) Total() domain.Money {
	return domain.Money{
		Amount:   c.TotalPrice(),
		Currency: c.currency,
	}
}

// GroupByShop buckets the line items by owning shop. Groups come in the order
// their shop first appears in the cart; line items without a shop share one
// unassigned group.
func (c *Cart) GroupByShop() domain.ShopGroups {
	var (
		groups     domain.ShopGroups
		index      = make(map[string]int)
		unassigned = -1
	)

	for _, item := range c.Items() {
		if !item.Product.HasShop() {
			if unassigned < 0 {
				unassigned = len(groups)
				groups = append(groups, domain.ShopGroup{Kind: domain.GroupUnassigned})
			}
			groups[unassigned].Items = append(groups[unassigned].Items, item)
			continue
		}

		shop := *item.Product.Shop
		i, ok := index[shop.ID]
		if !ok {
			i = len(groups)
			index[shop.ID] = i
			groups = append(groups, domain.ShopGroup{Kind: domain.GroupShop, Shop: shop})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}

func cloneProduct(p domain.Product) domain.Product {
	p.ImageURLs = slices.Clone(p.ImageURLs)
	if p.Shop != nil {
		shop := *p.Shop
		p.Shop = &shop
	}
	return p
}

func copyItem(item domain.LineItem) domain.LineItem {
	item.Product = cloneProduct(item.Product)
	return item
}
