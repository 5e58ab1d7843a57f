package transport

import (
	"errors"
	"net/http"
	"time"

	"recrent-shop/internal/domain"
	"recrent-shop/internal/middleware"
	"recrent-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// VerifyRequest represents the token verification payload
type VerifyRequest struct {
	Token string `json:"token"`
}

// AdminProfile is the public view of an admin user
type AdminProfile struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	User    AdminProfile `json:"user"`
}

// LoginFailure is returned with 401 on bad credentials
type LoginFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// VerifyResponse reports whether a token is still usable
type VerifyResponse struct {
	Valid bool          `json:"valid"`
	User  *AdminProfile `json:"user,omitempty"`
}

func newAdminProfile(user *domain.AdminUser) AdminProfile {
	return AdminProfile{ID: user.ID, Username: user.Username, LastLogin: user.LastLogin}
}

// AuthHandler handles admin authentication
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RegisterRoutes registers the auth routes. loginLimiter throttles login attempts.
func (h *AuthHandler) RegisterRoutes(r chi.Router, loginLimiter func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.With(loginLimiter).Post("/login", h.Login)
		r.Post("/verify", h.Verify)
	})
}

// Login handles admin authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))
		respondDecodeError(w, err)
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.Info("Login rejected", zap.String("username", req.Username))
			middleware.RespondWithJSON(w, http.StatusUnauthorized, LoginFailure{
				Success: false,
				Message: "invalid username or password",
			})
			return
		}

		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.logger.Info("Admin logged in", zap.Int64("user_id", user.ID))
	middleware.RespondWithJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Token:   token,
		User:    newAdminProfile(user),
	})
}

// Verify reports whether the supplied token is valid. The token may be sent
// in the body or as a bearer header.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest

	if r.ContentLength != 0 {
		if err := middleware.DecodeAndValidate(r, &req); err != nil {
			respondDecodeError(w, err)
			return
		}
	}
	if req.Token == "" {
		req.Token, _ = middleware.BearerToken(r)
	}
	if req.Token == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "token is required")
		return
	}

	user, err := h.authService.Verify(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrTokenExpired) {
			h.logger.Debug("Token rejected", zap.Error(err))
			middleware.RespondWithJSON(w, http.StatusOK, VerifyResponse{Valid: false})
			return
		}

		h.logger.Error("Token verification failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to verify token")
		return
	}

	profile := newAdminProfile(user)
	middleware.RespondWithJSON(w, http.StatusOK, VerifyResponse{Valid: true, User: &profile})
}
