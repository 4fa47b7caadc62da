package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/shopfront/internal/shopping/store"
	"github.com/tair/shopfront/internal/shopping/usecase/command"
	"github.com/tair/shopfront/internal/shopping/usecase/query"
	"github.com/tair/shopfront/pkg/auth"
	"github.com/tair/shopfront/pkg/logger"
)

// CommandHandlers holds all command handlers
type CommandHandlers struct {
	AddToCart      *command.AddToCartHandler
	UpdateQuantity *command.UpdateQuantityHandler
	RemoveFromCart *command.RemoveFromCartHandler
	ClearCart      *command.ClearCartHandler
	ToggleFavorite *command.ToggleFavoriteHandler
	Login          *command.LoginHandler
	Logout         *command.LogoutHandler
	LoadCatalog    *command.LoadCatalogHandler
}

// NewCommandHandlers builds every command handler over one store
func NewCommandHandlers(s *store.Store) CommandHandlers {
	return CommandHandlers{
		AddToCart:      command.NewAddToCartHandler(s),
		UpdateQuantity: command.NewUpdateQuantityHandler(s),
		RemoveFromCart: command.NewRemoveFromCartHandler(s),
		ClearCart:      command.NewClearCartHandler(s),
		ToggleFavorite: command.NewToggleFavoriteHandler(s),
		Login:          command.NewLoginHandler(s),
		Logout:         command.NewLogoutHandler(s),
		LoadCatalog:    command.NewLoadCatalogHandler(s),
	}
}

// QueryHandlers holds all query handlers
type QueryHandlers struct {
	ListProducts  *query.ListProductsHandler
	ListFavorites *query.ListFavoritesHandler
	GetCart       *query.GetCartHandler
	GetSession    *query.GetSessionHandler
}

// NewQueryHandlers builds every query handler over one store
func NewQueryHandlers(s *store.Store) QueryHandlers {
	return QueryHandlers{
		ListProducts:  query.NewListProductsHandler(s),
		ListFavorites: query.NewListFavoritesHandler(s),
		GetCart:       query.NewGetCartHandler(s),
		GetSession:    query.NewGetSessionHandler(s),
	}
}

// ShoppingHandler exposes the shopping store over HTTP
type ShoppingHandler struct {
	commands CommandHandlers
	queries  QueryHandlers
	tokens   *auth.TokenMaker

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewShoppingHandler creates a new shopping handler. The registerer
// receives the handler's metrics; pass prometheus.DefaultRegisterer in
// production.
func NewShoppingHandler(commands CommandHandlers, queries QueryHandlers, tokens *auth.TokenMaker, reg prometheus.Registerer) *ShoppingHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopfront_requests_total",
			Help: "Total number of requests to the shopping API",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopfront_request_duration_seconds",
			Help:    "Duration of shopping API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	reg.MustRegister(requestCounter, requestLatency)

	return &ShoppingHandler{
		commands:       commands,
		queries:        queries,
		tokens:         tokens,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

// Response is the JSON envelope for every endpoint
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Login handles POST /api/login
func (h *ShoppingHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if err := h.commands.Login.Handle(r.Context(), command.LoginCommand{
		Username: req.Username,
		Password: req.Password,
	}); err != nil {
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	token, err := h.tokens.NewToken(req.Username)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to issue session token")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to issue session token",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Logged in",
		Data: map[string]interface{}{
			"token":    token,
			"username": req.Username,
		},
	})
}

// Logout handles POST /api/logout
func (h *ShoppingHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.commands.Logout.Handle(r.Context()); err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Logged out",
	})
}

// GetSession handles GET /api/session
func (h *ShoppingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    h.queries.GetSession.Handle(),
	})
}

// ListProducts handles GET /api/products
func (h *ShoppingHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := query.ListProductsQuery{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	}
	q.SetFilters = r.URL.Query().Has("search") || r.URL.Query().Has("category")

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    h.queries.ListProducts.Handle(r.Context(), q),
	})
}

// ReloadCatalog handles POST /api/products/reload
func (h *ShoppingHandler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	source := h.commands.LoadCatalog.Handle(r.Context())

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Catalog reloaded",
		Data:    map[string]interface{}{"source": source},
	})
}

// ListFavorites handles GET /api/favorites
func (h *ShoppingHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    h.queries.ListFavorites.Handle(),
	})
}

// ToggleFavorite handles POST /api/favorites/{id}/toggle
func (h *ShoppingHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	favorited, err := h.commands.ToggleFavorite.Handle(r.Context(), command.ToggleFavoriteCommand{
		ProductID: productID,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"favorited": favorited},
	})
}

// GetCart handles GET /api/cart
func (h *ShoppingHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    h.queries.GetCart.Handle(),
	})
}

// AddToCart handles POST /api/cart
func (h *ShoppingHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	items, err := h.commands.AddToCart.Handle(r.Context(), command.AddToCartCommand{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Added to cart",
		Data:    items,
	})
}

// UpdateCartQuantity handles PATCH /api/cart/{id}
func (h *ShoppingHandler) UpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	items, err := h.commands.UpdateQuantity.Handle(r.Context(), command.UpdateQuantityCommand{
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Quantity updated",
		Data:    items,
	})
}

// RemoveFromCart handles DELETE /api/cart/{id}
func (h *ShoppingHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	items, err := h.commands.RemoveFromCart.Handle(r.Context(), command.RemoveFromCartCommand{
		ProductID: productID,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Removed from cart",
		Data:    items,
	})
}

// ClearCart handles DELETE /api/cart
func (h *ShoppingHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.commands.ClearCart.Handle(r.Context()); err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Cart cleared",
	})
}

// RegisterRoutes registers all shopping routes
func (h *ShoppingHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/login", h.Login).Methods("POST")
	router.HandleFunc("/api/session", h.GetSession).Methods("GET")

	router.HandleFunc("/api/products", h.ListProducts).Methods("GET")
	router.HandleFunc("/api/products/reload", h.ReloadCatalog).Methods("POST")

	router.HandleFunc("/api/favorites", h.ListFavorites).Methods("GET")
	router.HandleFunc("/api/cart", h.GetCart).Methods("GET")

	// Session-scoped mutations
	authMW := AuthMiddleware(h.tokens)
	router.HandleFunc("/api/logout", authMW(h.Logout)).Methods("POST")
	router.HandleFunc("/api/favorites/{id}/toggle", authMW(h.ToggleFavorite)).Methods("POST")
	router.HandleFunc("/api/cart", authMW(h.AddToCart)).Methods("POST")
	router.HandleFunc("/api/cart", authMW(h.ClearCart)).Methods("DELETE")
	router.HandleFunc("/api/cart/{id}", authMW(h.UpdateCartQuantity)).Methods("PATCH")
	router.HandleFunc("/api/cart/{id}", authMW(h.RemoveFromCart)).Methods("DELETE")
}

// RegisterHealthCheck registers the health endpoint
func (h *ShoppingHandler) RegisterHealthCheck(router *mux.Router, ping func() error) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, Response{
					Success: false,
					Error:   "Local store unavailable",
				})
				return
			}
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Shopfront is healthy",
		})
	}).Methods("GET")
}

func pathID(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars[key])
	if err != nil || id <= 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return 0, false
	}
	return id, true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
