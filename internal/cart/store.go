// Package cart holds a buyer's cart lines and persists them to durable storage
// after every mutation.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"recrent-shop/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaxQuantity is the largest quantity a single cart line can hold.
const MaxQuantity = 99

// Store owns the cart lines of one cart session. Storage read and write
// failures are logged and never returned: a broken payload opens as an empty
// cart and a failed write leaves the in-memory cart authoritative.
type Store struct {
	mu      sync.Mutex
	key     string
	storage Storage
	logger  *zap.Logger
	items   []domain.CartItem
}

// Open rehydrates the cart stored under key.
func Open(ctx context.Context, storage Storage, key string, logger *zap.Logger) *Store {
	s := &Store{
		key:     key,
		storage: storage,
		logger:  logger,
		items:   []domain.CartItem{},
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	data, err := s.storage.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			storageErrorsTotal.WithLabelValues("load").Inc()
			s.logger.Warn("Failed to load cart, starting empty", zap.String("cart_key", s.key), zap.Error(err))
		}
		return
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		storageErrorsTotal.WithLabelValues("decode").Inc()
		s.logger.Warn("Stored cart is corrupted, starting empty", zap.String("cart_key", s.key), zap.Error(err))
		return
	}

	for _, item := range items {
		if item.ID == "" || item.Quantity <= 0 {
			continue
		}
		item.Quantity = clampQuantity(item.Quantity)
		s.items = append(s.items, item)
	}
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) {
	if len(s.items) == 0 {
		if err := s.storage.Delete(ctx, s.key); err != nil {
			storageErrorsTotal.WithLabelValues("delete").Inc()
			s.logger.Error("Failed to delete cart", zap.String("cart_key", s.key), zap.Error(err))
		}
		return
	}

	data, err := json.Marshal(s.items)
	if err != nil {
		storageErrorsTotal.WithLabelValues("encode").Inc()
		s.logger.Error("Failed to encode cart", zap.String("cart_key", s.key), zap.Error(err))
		return
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		storageErrorsTotal.WithLabelValues("save").Inc()
		s.logger.Error("Failed to save cart", zap.String("cart_key", s.key), zap.Error(err))
	}
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(item domain.CartItem) bool { return item.ID == id })
}

// clampQuantity keeps a line quantity within [1, MaxQuantity].
func clampQuantity(q int) int {
	return min(max(q, 1), MaxQuantity)
}

// AddItem adds a line. A line with the same id has its quantity increased
// instead. Quantities are kept within [1, MaxQuantity].
func (s *Store) AddItem(ctx context.Context, item domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.Quantity = clampQuantity(item.Quantity)
	if i := s.indexOf(item.ID); i >= 0 {
		// both operands are at most MaxQuantity, so the sum cannot overflow
		s.items[i].Quantity = clampQuantity(s.items[i].Quantity + item.Quantity)
	} else {
		s.items = append(s.items, item)
	}
	s.persist(ctx)
}

// RemoveItem deletes the line with id. Unknown ids are ignored.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.persist(ctx)
}

// UpdateQuantity sets the quantity of the line with id; zero or less removes it
// and values above MaxQuantity are capped. It reports whether the line existed.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	} else {
		s.items[i].Quantity = clampQuantity(quantity)
	}
	s.persist(ctx)
	return true
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []domain.CartItem{}
	s.persist(ctx)
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(make([]domain.CartItem, 0, len(s.items)), s.items...)
}

// TotalItems is the sum of line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity, in whole rubles.
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(unitPrice(item).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(0).IntPart()
}

// unitPrice prefers the numeric snapshot. Lines persisted before it existed
// carry only the display string, which is parsed; unparsable strings count as zero.
func unitPrice(item domain.CartItem) decimal.Decimal {
	if item.UnitPrice > 0 {
		return decimal.NewFromInt(item.UnitPrice)
	}
	price, err := domain.ParseDisplayPrice(item.Price)
	if err != nil {
		return decimal.Zero
	}
	return price
}
