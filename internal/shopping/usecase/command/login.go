package command

import (
	"context"
	"fmt"

	"github.com/tair/shopfront/internal/shopping/store"
)

// LoginCommand represents the mocked login command. Credentials are not
// verified against any authority; both fields must simply be non-empty.
type LoginCommand struct {
	Username string
	Password string
}

// LoginHandler handles the login command
type LoginHandler struct {
	store *store.Store
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(s *store.Store) *LoginHandler {
	return &LoginHandler{store: s}
}

// Handle executes the login command
func (h *LoginHandler) Handle(ctx context.Context, cmd LoginCommand) error {
	ok, err := h.store.Login(ctx, cmd.Username, cmd.Password)
	if !ok {
		return fmt.Errorf("username and password are required")
	}
	if err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// LogoutHandler handles the logout command
type LogoutHandler struct {
	store *store.Store
}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler(s *store.Store) *LogoutHandler {
	return &LogoutHandler{store: s}
}

// Handle clears the session
func (h *LogoutHandler) Handle(ctx context.Context) error {
	if err := h.store.Logout(ctx); err != nil {
		return fmt.Errorf("failed to persist logout: %w", err)
	}
	return nil
}
