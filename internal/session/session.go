// Package session holds the current credential and user profile, persisted
// across client restarts through the durable store.
package session

import (
	"context"
	"log/slog"
	"sync"

	"auctionhub/internal/models"
	"auctionhub/internal/observability"
	"auctionhub/internal/store"
)

// Storage keys, namespaced by the store under the application prefix.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Manager is the process-wide session state. Credential and profile are
// always both present or both absent.
type Manager struct {
	mu     sync.RWMutex
	store  store.Store
	logger *observability.Logger
	token  string
	user   *models.User
}

// NewManager builds a manager and hydrates it from the store. A half-written
// persisted state (one key without the other) is treated as logged out and
// the stale keys are removed.
func NewManager(ctx context.Context, st store.Store, logger *observability.Logger) *Manager {
	m := &Manager{store: st, logger: observability.NewLogger(nil)}
	if logger != nil {
		m.logger = logger
	}
	m.hydrate(ctx)
	return m
}

func (m *Manager) hydrate(ctx context.Context) {
	token, hasToken, err := m.store.Get(ctx, KeyToken)
	if err != nil {
		m.logger.Warn("session hydrate failed", slog.String("error", err.Error()))
		return
	}

	var user models.User
	hasUser, err := store.GetJSON(ctx, m.store, KeyUser, &user)
	if err != nil {
		m.logger.Warn("session hydrate failed", slog.String("error", err.Error()))
		return
	}

	if !hasToken || !hasUser {
		if hasToken || hasUser {
			_ = m.store.Delete(ctx, KeyToken, KeyUser)
		}
		return
	}

	m.token = token
	m.user = &user
}

// IsAuthenticated reports whether both credential and profile are present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != "" && m.user != nil
}

// Save sets both fields in memory and writes them to the store. A storage
// failure is logged but does not roll back the in-memory update; the next
// successful Save or Clear resolves the inconsistency.
func (m *Manager) Save(ctx context.Context, token string, user *models.User) {
	m.mu.Lock()
	m.token = token
	u := *user
	m.user = &u
	m.mu.Unlock()

	if err := m.store.Set(ctx, KeyToken, token); err != nil {
		m.logger.Warn("persisting credential failed", slog.String("error", err.Error()))
		return
	}
	if err := store.SetJSON(ctx, m.store, KeyUser, user); err != nil {
		m.logger.Warn("persisting profile failed", slog.String("error", err.Error()))
	}
}

// Clear unsets both fields and removes the persisted entries.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	return m.store.Delete(ctx, KeyToken, KeyUser)
}

// Token returns the current credential, or "" when logged out. Implements
// api.TokenProvider.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// User returns a copy of the current profile, or nil when logged out.
func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// CanSell reports whether the profile carries the listing-creation flag.
// This gates UI affordances only; the server is the authority.
func (m *Manager) CanSell() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.IsAdmin
}
