package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nikolayk812/shopcart/internal/api"
	"github.com/nikolayk812/shopcart/internal/auth"
	"github.com/nikolayk812/shopcart/internal/cart"
	"github.com/nikolayk812/shopcart/internal/checkout"
	"github.com/nikolayk812/shopcart/internal/config"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/logger"
	"github.com/nikolayk812/shopcart/internal/port"
	"github.com/nikolayk812/shopcart/internal/repository"
	"github.com/nikolayk812/shopcart/internal/session"
)

type cartFile struct {
	OwnerID         string     `json:"owner_id"`
	ShippingAddress string     `json:"shipping_address"`
	ContactPhone    string     `json:"contact_phone"`
	Items           []fileItem `json:"items"`
}

type fileItem struct {
	Product  fileProduct `json:"product"`
	Quantity int         `json:"quantity"`
}

type fileProduct struct {
	ID     string          `json:"_id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Images []string        `json:"images"`
	Shop   *struct {
		ID       string `json:"_id"`
		Name     string `json:"name"`
		Category string `json:"category"`
	} `json:"shop"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/checkout/main.go <cart.json>")
		fmt.Println("The session token is read from SHOP_TOKEN.")
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Getenv("SHOP_TOKEN")); err != nil {
		fmt.Fprintf(os.Stderr, "checkout failed: %v\n", err)
		os.Exit(1)
	}
}

func run(path, token string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return fmt.Errorf("logger.New: %w", err)
	}
	defer func() { _ = log.Sync() }()

	input, err := readCartFile(path)
	if err != nil {
		return fmt.Errorf("readCartFile: %w", err)
	}

	var store port.CartStore
	if cfg.Database.Enabled() {
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("pgxpool.New: %w", err)
		}
		defer pool.Close()

		store = repository.NewCart(pool, cfg.Cart.Currency)
	}

	client, err := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log)
	if err != nil {
		return fmt.Errorf("api.NewClient: %w", err)
	}
	defer client.Close()

	registry := session.NewRegistry(cfg.Cart.Currency, store, log)
	service := checkout.NewService(client, auth.NewChecker(cfg.Auth.TokenLeeway), registry, log)

	if err := registry.Open(ctx, input.OwnerID); err != nil {
		return fmt.Errorf("registry.Open: %w", err)
	}
	defer func() {
		if err := registry.Close(context.WithoutCancel(ctx), input.OwnerID); err != nil {
			log.Error("failed to close session", zap.Error(err))
		}
	}()

	err = registry.Do(input.OwnerID, func(c *cart.Cart) error {
		return fill(c, input.Items)
	})
	if err != nil {
		return err
	}

	if err := registry.Do(input.OwnerID, printCart); err != nil {
		return err
	}

	receipt, err := service.Checkout(ctx, input.OwnerID, token, checkout.ShippingDetails{
		Address: input.ShippingAddress,
		Phone:   input.ContactPhone,
	})
	if err != nil {
		return fmt.Errorf("service.Checkout: %w", err)
	}

	fmt.Printf("Order placed: %s\n", receipt.OrderID)
	if receipt.Message != "" {
		fmt.Println(receipt.Message)
	}

	return nil
}

func readCartFile(path string) (cartFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cartFile{}, fmt.Errorf("os.ReadFile: %w", err)
	}

	var input cartFile
	if err := json.Unmarshal(data, &input); err != nil {
		return cartFile{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	if input.OwnerID == "" {
		input.OwnerID = uuid.NewString()
	}

	return input, nil
}

func fill(c *cart.Cart, items []fileItem) error {
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}

		product := domain.Product{
			ID:        item.Product.ID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			ImageURLs: item.Product.Images,
		}
		if s := item.Product.Shop; s != nil {
			product.Shop = &domain.ShopRef{ID: s.ID, Name: s.Name, Category: s.Category}
		}

		if err := product.Validate(); err != nil {
			return fmt.Errorf("product.Validate: %w", err)
		}

		c.AddItem(product)
		if item.Quantity > 1 {
			current, _ := c.Item(product.ID)
			c.UpdateQuantity(product.ID, current.Quantity+item.Quantity-1)
		}
	}

	return nil
}

func printCart(c *cart.Cart) error {
	for _, g := range c.GroupByShop() {
		fmt.Printf("%s (%d)\n", g.DisplayName(), g.ItemCount())
		for _, item := range g.Items {
			fmt.Printf("  %-30s %3d x %s = %s\n", item.Product.Name, item.Quantity, item.Product.Price, item.Subtotal())
		}
	}

	total := c.Total()
	fmt.Printf("%d article(s), total %s %s\n", c.ItemCount(), total.Amount, total.Currency)

	return nil
}
