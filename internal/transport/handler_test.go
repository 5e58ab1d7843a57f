package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"recrent-shop/internal/cart"
	"recrent-shop/internal/domain"
	"recrent-shop/internal/middleware"
	"recrent-shop/internal/repository"
	"recrent-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAdminUsers struct {
	mu    sync.Mutex
	users []*domain.AdminUser
}

func (f *fakeAdminUsers) Create(_ context.Context, user *domain.AdminUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			return repository.ErrAdminUserAlreadyExists
		}
	}
	user.ID = int64(len(f.users) + 1)
	stored := *user
	f.users = append(f.users, &stored)
	return nil
}

func (f *fakeAdminUsers) find(match func(*domain.AdminUser) bool) (*domain.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			found := *u
			return &found, nil
		}
	}
	return nil, repository.ErrAdminUserNotFound
}

func (f *fakeAdminUsers) FindByUsername(_ context.Context, username string) (*domain.AdminUser, error) {
	return f.find(func(u *domain.AdminUser) bool { return u.Username == username })
}

func (f *fakeAdminUsers) FindByID(_ context.Context, id int64) (*domain.AdminUser, error) {
	return f.find(func(u *domain.AdminUser) bool { return u.ID == id })
}

func (f *fakeAdminUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return repository.ErrAdminUserNotFound
}

func (f *fakeAdminUsers) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			u.LastLogin = &at
			return nil
		}
	}
	return repository.ErrAdminUserNotFound
}

type fakeProducts struct {
	mu       sync.Mutex
	products []domain.Product
	nextID   int64
	err      error
}

func (f *fakeProducts) index(id int64) int {
	for i := range f.products {
		if f.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeProducts) Create(_ context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	p.ID = f.nextID
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProducts) Update(_ context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	i := f.index(p.ID)
	if i < 0 {
		return repository.ErrProductNotFound
	}
	f.products[i] = *p
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	i := f.index(id)
	if i < 0 {
		return repository.ErrProductNotFound
	}
	f.products = append(f.products[:i], f.products[i+1:]...)
	return nil
}

func (f *fakeProducts) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	i := f.index(id)
	if i < 0 {
		return nil, repository.ErrProductNotFound
	}
	p := f.products[i]
	return &p, nil
}

func (f *fakeProducts) List(_ context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Product{}, f.products...), nil
}

var seedProducts = []domain.Product{
	{ID: 1, Title: "Коврик Core L", PriceNumeric: 3000, Rating: 4.9, ReviewCount: 120, Category: domain.CategoryMousepads, Color: "black", Collection: "core", ProductSize: "L", Image: "/img/core-l.png"},
	{ID: 2, Title: "Худи Drop", PriceNumeric: 5500, Rating: 4.7, ReviewCount: 40, Category: domain.CategoryClothing, Color: "white", Collection: "drop-1", ClothingType: "hoodie", ProductSize: "M, L", Image: "/img/hoodie.png"},
	{ID: 3, Title: "Футболка Drop", PriceNumeric: 2500, Rating: 4.7, ReviewCount: 80, Category: domain.CategoryClothing, Color: "black", Collection: "drop-1", ClothingType: "t-shirt", ProductSize: "S, M", Image: "/img/tee.png"},
}

type testServer struct {
	router   http.Handler
	products *fakeProducts
	users    *fakeAdminUsers
	tokens   *service.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()

	users := &fakeAdminUsers{}
	products := &fakeProducts{products: append([]domain.Product{}, seedProducts...), nextID: int64(len(seedProducts))}
	tokens := service.NewTokenManager("test-secret", time.Hour)

	authService := service.NewAuthService(users, tokens)
	_, err := authService.EnsureAdmin(context.Background(), "admin", "recrent-admin")
	require.NoError(t, err)

	productService := service.NewProductService(products)

	r := chi.NewRouter()
	r.Use(middleware.ErrorHandlingMiddleware(logger))
	NewHealthHandler(nil).RegisterRoutes(r)
	NewAuthHandler(authService, logger).RegisterRoutes(r, func(next http.Handler) http.Handler { return next })
	NewProductHandler(productService, logger).RegisterRoutes(r, middleware.AuthMiddleware(tokens, logger))
	NewCatalogHandler(service.NewCatalogService(productService), logger).RegisterRoutes(r)
	NewCartHandler(cart.NewManager(cart.NewMemoryStorage(), logger), productService, logger).RegisterRoutes(r)

	return &testServer{router: r, products: products, users: users, tokens: tokens}
}

// do sends a JSON request. headers are name/value pairs.
func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	w := s.do(t, "POST", "/api/auth/login", LoginRequest{Username: "admin", Password: "recrent-admin"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
