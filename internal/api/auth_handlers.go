package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/domain/user"
)

// AuthHandlers handles registration, login and identity lookups.
type AuthHandlers struct {
	users      *user.Service
	jwtService *auth.JWTService
	log        *slog.Logger
}

func NewAuthHandlers(users *user.Service, jwtService *auth.JWTService, log *slog.Logger) *AuthHandlers {
	return &AuthHandlers{
		users:      users,
		jwtService: jwtService,
		log:        log,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the user and a bearer token for the client to
// store and send back in the Authorization header.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func userResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Register handles user registration
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" {
		respondError(w, "name and email are required", http.StatusBadRequest)
		return
	}

	u, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(u.ID, u.Name, u.Email, u.Role)
	if err != nil {
		h.log.Error("failed to sign token", "user_id", u.ID, "error", err)
		respondError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.log.Info("user registered", "user_id", u.ID)
	respondJSON(w, http.StatusCreated, AuthResponse{
		User:      userResponse(u),
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// Login handles user login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(u.ID, u.Name, u.Email, u.Role)
	if err != nil {
		h.log.Error("failed to sign token", "user_id", u.ID, "error", err)
		respondError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		User:      userResponse(u),
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// Me returns the current authenticated user's information
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.users.Get(r.Context(), claims.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, userResponse(u))
}
