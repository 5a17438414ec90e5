// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/smartshop-backend/internal/domain/product"
	"github.com/your-org/smartshop-backend/internal/infrastructure/database/redis"
)

const cartTTL = 24 * time.Hour

// Service manages the session cart in Redis
type Service struct {
	store  redis.Store
	logger *logrus.Logger
}

// NewService creates a cart service
func NewService(store redis.Store, logger *logrus.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Get returns the session cart, empty if none exists yet
func (s *Service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	var c Cart
	err := s.store.GetJSON(ctx, cartKey(sessionID), &c)
	if errors.Is(err, redis.ErrNotFound) {
		return &Cart{SessionID: sessionID, Items: []Item{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	c.calculateTotals()
	return &c, nil
}

// AddItem adds one unit of a product to the cart. A product already in
// the cart gets its quantity bumped instead of a second line. Adding
// never fails for business reasons.
func (s *Service) AddItem(ctx context.Context, sessionID string, p *product.Product) (*Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, Item{
			ProductID:    p.ID,
			Name:         p.Name,
			Price:        p.Price,
			Currency:     p.Currency,
			ImageKeyword: p.ImagePrompt(),
			Quantity:     1,
		})
	}

	c.UpdatedAt = time.Now().UTC()
	c.calculateTotals()

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"product_id": p.ID,
		"item_count": c.ItemCount,
	}).Debug("item added to cart")

	return c, nil
}

// Clear empties the session cart. This is the only removal operation:
// it runs when an order completes.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, cartKey(sessionID)); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *Service) save(ctx context.Context, c *Cart) error {
	if err := s.store.SetJSON(ctx, cartKey(c.SessionID), c, cartTTL); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
