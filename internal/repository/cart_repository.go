package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	selectCartSQL = `
		SELECT product_id, name, price_amount, price_currency, image_urls,
		       shop_id, shop_name, shop_category, quantity
		FROM cart_items
		WHERE owner_id = $1
		ORDER BY position`

	deleteCartSQL = `DELETE FROM cart_items WHERE owner_id = $1`

	insertItemSQL = `
		INSERT INTO cart_items (owner_id, product_id, position, name, price_amount, price_currency,
		                        image_urls, shop_id, shop_name, shop_category, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
)

type cartRepository struct {
	q        querier
	pool     *pgxpool.Pool
	currency currency.Unit
}

// NewCart stores cart snapshots with prices tagged in cur.
func NewCart(pool *pgxpool.Pool, cur currency.Unit) port.CartStore {
	return &cartRepository{
		q:        pool,
		pool:     pool,
		currency: cur,
	}
}

func NewCartWithTx(tx pgx.Tx, cur currency.Unit) port.CartStore {
	return &cartRepository{
		q:        tx,
		pool:     nil, // use provided transaction instead
		currency: cur,
	}
}

func (r *cartRepository) LoadCart(ctx context.Context, ownerID string) ([]domain.LineItem, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	rows, err := r.q.Query(ctx, selectCartSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}

	dbRows, err := pgx.CollectRows(rows, pgx.RowToStructByPos[cartItemRow])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}

	items, err := mapCartRowsToDomain(dbRows, r.currency)
	if err != nil {
		return nil, fmt.Errorf("mapCartRowsToDomain: %w", err)
	}

	return items, nil
}

// SaveCart replaces the stored snapshot of ownerID with items, keeping their order.
func (r *cartRepository) SaveCart(ctx context.Context, ownerID string, items []domain.LineItem) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	_, err := withTx(ctx, r.pool, r.q, func(q querier) (struct{}, error) {
		if _, err := q.Exec(ctx, deleteCartSQL, ownerID); err != nil {
			return struct{}{}, fmt.Errorf("q.Exec: %w", err)
		}

		if len(items) == 0 {
			return struct{}{}, nil
		}

		batch := &pgx.Batch{}
		for i, item := range items {
			if item.Quantity <= 0 {
				return struct{}{}, fmt.Errorf("item[%s] quantity is not positive: %d", item.Product.ID, item.Quantity)
			}

			row := mapDomainToCartRow(item)
			batch.Queue(insertItemSQL,
				ownerID, row.ProductID, i, row.Name, row.PriceAmount, r.currency.String(),
				row.ImageURLs, row.ShopID, row.ShopName, row.ShopCategory, row.Quantity,
			)
		}

		if err := q.SendBatch(ctx, batch).Close(); err != nil {
			return struct{}{}, fmt.Errorf("q.SendBatch: %w", err)
		}

		return struct{}{}, nil
	})

	return err
}

func (r *cartRepository) DeleteCart(ctx context.Context, ownerID string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	tag, err := r.q.Exec(ctx, deleteCartSQL, ownerID)
	if err != nil {
		return false, fmt.Errorf("q.Exec: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

type cartItemRow struct {
	ProductID     string
	Name          string
	PriceAmount   decimal.Decimal
	PriceCurrency string
	ImageURLs     []string
	ShopID        *string
	ShopName      *string
	ShopCategory  *string
	Quantity      int32
}

func mapCartRowToDomain(row cartItemRow, cur currency.Unit) (domain.LineItem, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	if parsedCurrency != cur {
		return domain.LineItem{}, fmt.Errorf("currency[%s] does not match cart currency[%s]", parsedCurrency, cur)
	}

	product := domain.Product{
		ID:        row.ProductID,
		Name:      row.Name,
		Price:     row.PriceAmount,
		ImageURLs: row.ImageURLs,
	}

	if row.ShopID != nil {
		product.Shop = &domain.ShopRef{
			ID:       *row.ShopID,
			Name:     deref(row.ShopName),
			Category: deref(row.ShopCategory),
		}
	}

	return domain.LineItem{
		Product:  product,
		Quantity: int(row.Quantity),
	}, nil
}

func mapCartRowsToDomain(rows []cartItemRow, cur currency.Unit) ([]domain.LineItem, error) {
	var items []domain.LineItem

	for _, row := range rows {
		item, err := mapCartRowToDomain(row, cur)
		if err != nil {
			return nil, fmt.Errorf("mapCartRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}

func mapDomainToCartRow(item domain.LineItem) cartItemRow {
	row := cartItemRow{
		ProductID:   item.Product.ID,
		Name:        item.Product.Name,
		PriceAmount: item.Product.Price,
		ImageURLs:   item.Product.ImageURLs,
		Quantity:    int32(item.Quantity),
	}

	if row.ImageURLs == nil {
		row.ImageURLs = []string{}
	}

	if shop := item.Product.Shop; shop != nil {
		row.ShopID = &shop.ID
		row.ShopName = &shop.Name
		row.ShopCategory = &shop.Category
	}

	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
