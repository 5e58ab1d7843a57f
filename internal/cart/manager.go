package cart

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager opens carts by session id. Concurrent requests for the same session
// each work on their own Store; the last one to persist wins.
type Manager struct {
	storage Storage
	logger  *zap.Logger
}

func NewManager(storage Storage, logger *zap.Logger) *Manager {
	return &Manager{storage: storage, logger: logger.Named("cart")}
}

// NewSessionID issues a fresh cart session id.
func (m *Manager) NewSessionID() string {
	return uuid.NewString()
}

// ValidSessionID reports whether id looks like an id issued by NewSessionID.
func ValidSessionID(id string) bool {
	return uuid.Validate(id) == nil
}

// Open rehydrates the cart of a session.
func (m *Manager) Open(ctx context.Context, sessionID string) *Store {
	return Open(ctx, m.storage, sessionID, m.logger)
}
