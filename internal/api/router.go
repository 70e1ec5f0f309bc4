package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/domain/user"
)

type RouterConfig struct {
	Handlers     *Handlers
	AuthHandlers *AuthHandlers
	JWTService   *auth.JWTService
	Logger       *slog.Logger

	// WebDir, when non-empty, is served as the static browser client.
	WebDir string
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	handlers := cfg.Handlers
	authRequired := middleware.Auth(cfg.JWTService)
	adminOnly := middleware.RequireRole(user.RoleAdmin)

	// Static files (web UI)
	if cfg.WebDir != "" {
		fs := http.FileServer(http.Dir(cfg.WebDir))
		mux.Handle("/", fs)
	}

	// Auth
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			cfg.AuthHandlers.Register(w, r)
		default:
			respondError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			cfg.AuthHandlers.Login(w, r)
		default:
			respondError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.Handle("/api/auth/me", authRequired(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cfg.AuthHandlers.Me(w, r)
		default:
			respondError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	// Catalog
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetProducts(w, r)
		default:
			respondError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/products/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respondError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Path == "/api/products/featured" {
			handlers.GetFeaturedProducts(w, r)
			return
		}
		handlers.GetProduct(w, r)
	})

	mux.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetCategories(w, r)
		default:
			respondError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Cart
	mux.Handle("/api/cart", authRequired(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetCart(w, r)
		case http.MethodPost:
			handlers.AddToCart(w, r)
		case http.MethodDelete:
			handlers.ClearCart(w, r)
		default:
			respondError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	mux.Handle("/api/cart/", authRequired(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			handlers.UpdateCartItem(w, r)
		case http.MethodDelete:
			handlers.RemoveCartItem(w, r)
		default:
			respondError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	// Orders
	mux.Handle("/api/orders", authRequired(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetOrders(w, r)
		case http.MethodPost:
			handlers.PlaceOrder(w, r)
		default:
			respondError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	mux.Handle("/api/orders/", authRequired(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/status") && r.Method == http.MethodPut:
			adminOnly(http.HandlerFunc(handlers.UpdateOrderStatus)).ServeHTTP(w, r)
		case r.Method == http.MethodGet:
			handlers.GetOrder(w, r)
		default:
			respondError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	return withLogging(mux, cfg.Logger)
}

func withLogging(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
