package cart

import (
	"context"
	"errors"
	"time"

	"recrent-shop/internal/domain"

	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart is empty")

// Summary is the derived view of a cart.
type Summary struct {
	Items               []domain.CartItem `json:"items"`
	TotalItems          int               `json:"totalItems"`
	TotalPrice          int64             `json:"totalPrice"`
	TotalPriceFormatted string            `json:"totalPriceFormatted"`
}

// Summarize captures the cart contents and totals.
func (s *Store) Summarize() Summary {
	total := s.TotalPrice()
	return Summary{
		Items:               s.Items(),
		TotalItems:          s.TotalItems(),
		TotalPrice:          total,
		TotalPriceFormatted: domain.FormatPrice(total),
	}
}

// Order is the confirmation returned by Checkout.
type Order struct {
	Number   string    `json:"orderNumber"`
	PlacedAt time.Time `json:"placedAt"`
	Summary
}

// Checkout places the current cart as an order and empties it.
// An empty cart yields ErrEmptyCart and is left untouched.
func (s *Store) Checkout(ctx context.Context) (*Order, error) {
	summary := s.Summarize()
	if len(summary.Items) == 0 {
		return nil, ErrEmptyCart
	}

	s.Clear(ctx)
	return &Order{
		Number:   uuid.NewString(),
		PlacedAt: time.Now().UTC(),
		Summary:  summary,
	}, nil
}
