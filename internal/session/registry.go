// Package session owns the carts of active sessions. A cart exists between
// Open and Close; with a store configured it survives Close and is restored
// by the next Open of the same owner.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nikolayk812/shopcart/internal/cart"
	"github.com/nikolayk812/shopcart/internal/port"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

var ErrNotOpen = errors.New("session is not open")

type entry struct {
	mu     sync.Mutex
	cart   *cart.Cart
	closed bool
}

type Registry struct {
	currency currency.Unit
	store    port.CartStore // nil: carts are not persisted
	logger   *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*entry
}

func NewRegistry(cur currency.Unit, store port.CartStore, logger *zap.Logger) *Registry {
	return &Registry{
		currency: cur,
		store:    store,
		logger:   logger,
		sessions: make(map[string]*entry),
	}
}

// Open starts a session for ownerID. Opening an already open session is a no-op.
func (r *Registry) Open(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	r.mu.RLock()
	_, open := r.sessions[ownerID]
	r.mu.RUnlock()
	if open {
		return nil
	}

	c := cart.New(r.currency)

	if r.store != nil {
		items, err := r.store.LoadCart(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("store.LoadCart: %w", err)
		}
		c.Restore(items)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[ownerID]; ok {
		return nil
	}
	r.sessions[ownerID] = &entry{cart: c}

	r.logger.Debug("session opened", zap.String("owner_id", ownerID), zap.Int("line_items", c.Len()))

	return nil
}

// Do runs fn while holding the session's cart exclusively.
func (r *Registry) Do(ownerID string, fn func(c *cart.Cart) error) error {
	e, err := r.get(ownerID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return fmt.Errorf("%w: %s", ErrNotOpen, ownerID)
	}

	return fn(e.cart)
}

// Close ends the session. With a store the cart contents are saved first;
// an empty cart removes the saved snapshot instead. The cart stays locked until
// the session is gone, so no Do can change a cart that is being discarded.
func (r *Registry) Close(ctx context.Context, ownerID string) error {
	e, err := r.get(ownerID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return fmt.Errorf("%w: %s", ErrNotOpen, ownerID)
	}

	if r.store != nil {
		items := e.cart.Items()

		if len(items) == 0 {
			if _, err := r.store.DeleteCart(ctx, ownerID); err != nil {
				return fmt.Errorf("store.DeleteCart: %w", err)
			}
		} else if err := r.store.SaveCart(ctx, ownerID, items); err != nil {
			return fmt.Errorf("store.SaveCart: %w", err)
		}
	}

	e.closed = true

	r.mu.Lock()
	if r.sessions[ownerID] == e {
		delete(r.sessions, ownerID)
	}
	r.mu.Unlock()

	r.logger.Debug("session closed", zap.String("owner_id", ownerID))

	return nil
}

func (r *Registry) IsOpen(ownerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.sessions[ownerID]
	return ok
}

func (r *Registry) get(ownerID string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.sessions[ownerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotOpen, ownerID)
	}
	return e, nil
}
