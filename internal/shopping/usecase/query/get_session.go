package query

import (
	"github.com/tair/shopfront/internal/shopping/store"
)

// GetSessionResult carries the minimal session state
type GetSessionResult struct {
	Username string `json:"username"`
	LoggedIn bool   `json:"logged_in"`
}

// GetSessionHandler handles the get session query
type GetSessionHandler struct {
	store *store.Store
}

// NewGetSessionHandler creates a new get session handler
func NewGetSessionHandler(s *store.Store) *GetSessionHandler {
	return &GetSessionHandler{store: s}
}

// Handle returns the current session state
func (h *GetSessionHandler) Handle() GetSessionResult {
	return GetSessionResult{
		Username: h.store.CurrentUser(),
		LoggedIn: h.store.IsLoggedIn(),
	}
}
