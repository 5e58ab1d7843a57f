package server

import (
	"fmt"
	"net/http"
	"time"

	"recrent-shop/internal/cart"
	"recrent-shop/internal/config"
	"recrent-shop/internal/database"
	custommiddleware "recrent-shop/internal/middleware"
	"recrent-shop/internal/repository"
	"recrent-shop/internal/service"
	"recrent-shop/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *database.Service
	redis  *redis.Client
}

// NewServer wires repositories, services and handlers into the router.
// redisClient may be nil, in which case carts are kept in memory and login
// attempts are not rate limited.
func NewServer(cfg *config.Config, logger *zap.Logger, db *database.Service, redisClient *redis.Client) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, !cfg.Server.IsProduction()))
	router.Use(custommiddleware.MetricsMiddleware)

	router.Method(http.MethodGet, "/metrics", custommiddleware.MetricsHandler())

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.DB())
	adminRepo := repository.NewAdminUserRepository(db.DB())

	// Initialize services
	secret := cfg.JWT.Secret
	if secret == "" {
		logger.Warn("JWT_SECRET is not set, using a random secret; tokens will not survive a restart")
		secret = uuid.NewString()
	}
	tokens := service.NewTokenManager(secret, cfg.JWT.Expiry)
	authService := service.NewAuthService(adminRepo, tokens)
	productService := service.NewProductService(productRepo)
	catalogService := service.NewCatalogService(productService)
	carts := cart.NewManager(newCartStorage(cfg, logger, redisClient), logger)

	// Initialize handlers
	healthHandler := transport.NewHealthHandler(db)
	authHandler := transport.NewAuthHandler(authService, logger)
	productHandler := transport.NewProductHandler(productService, logger)
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	cartHandler := transport.NewCartHandler(carts, productService, logger)

	authMiddleware := custommiddleware.AuthMiddleware(tokens, logger)

	// Register routes
	healthHandler.RegisterRoutes(router)
	authHandler.RegisterRoutes(router, newLoginLimiter(cfg, logger, redisClient))
	productHandler.RegisterRoutes(router, authMiddleware)
	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func newCartStorage(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) cart.Storage {
	if cfg.Cart.Storage == "redis" && redisClient != nil {
		return cart.NewRedisStorage(redisClient, cfg.Cart.KeyPrefix, cfg.Cart.TTL)
	}
	if cfg.Cart.Storage == "redis" {
		logger.Warn("Redis is unavailable, carts are kept in memory")
	}
	return cart.NewMemoryStorage()
}

func newLoginLimiter(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) func(http.Handler) http.Handler {
	if redisClient == nil || cfg.RateLimit.LoginPerMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.LoginPerMinute,
		Window:            time.Minute,
		KeyPrefix:         "recrent_login_limit",
	}, logger)
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	_ = s.logger.Sync()
	return nil
}
