package service

import (
	"context"
	"sync"
	"time"

	"recrent-shop/internal/domain"
	"recrent-shop/internal/repository"
)

// Mock repositories for testing
type mockAdminUserRepository struct {
	mu     sync.Mutex
	users  map[int64]*domain.AdminUser
	nextID int64
}

func newMockAdminUserRepository() *mockAdminUserRepository {
	return &mockAdminUserRepository{users: make(map[int64]*domain.AdminUser)}
}

func (m *mockAdminUserRepository) Create(_ context.Context, user *domain.AdminUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return repository.ErrAdminUserAlreadyExists
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockAdminUserRepository) FindByUsername(_ context.Context, username string) (*domain.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			found := *u
			return &found, nil
		}
	}
	return nil, repository.ErrAdminUserNotFound
}

func (m *mockAdminUserRepository) FindByID(_ context.Context, id int64) (*domain.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrAdminUserNotFound
	}
	found := *u
	return &found, nil
}

func (m *mockAdminUserRepository) UpdatePassword(_ context.Context, id int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrAdminUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *mockAdminUserRepository) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrAdminUserNotFound
	}
	u.LastLogin = &at
	return nil
}

type mockProductRepository struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	nextID   int64
	err      error
}

func newMockProductRepository(seed ...domain.Product) *mockProductRepository {
	m := &mockProductRepository{products: make(map[int64]domain.Product)}
	for _, p := range seed {
		m.products[p.ID] = p
		if p.ID > m.nextID {
			m.nextID = p.ID
		}
	}
	return m
}

func (m *mockProductRepository) Create(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	p.ID = m.nextID
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	m.products[p.ID] = *p
	return nil
}

func (m *mockProductRepository) Update(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.products[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	m.products[p.ID] = *p
	return nil
}

func (m *mockProductRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockProductRepository) List(_ context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Product, 0, len(m.products))
	for id := int64(1); id <= m.nextID; id++ {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
