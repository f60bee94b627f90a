// internal/domain/user/session.go
package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-storefront/internal/infrastructure/storage"
)

// Storage keys of the session record
const (
	UserKey  = "user"
	TokenKey = "token"

	legacyUserKey  = "currentUser"
	legacyTokenKey = "authToken"
)

// ErrNotAuthenticated is returned by operations that need a logged-in user
var ErrNotAuthenticated = errors.New("user is not logged in")

// TokenIssuer mints a session token when the caller logs in without one
type TokenIssuer interface {
	GenerateAccessToken(userID, username string) (string, error)
}

// Session holds the authenticated user of one storefront session
type Session struct {
	store  storage.Store
	tokens TokenIssuer
	log    logrus.FieldLogger

	mu   sync.RWMutex
	user *User
}

// Open restores the session from store. Records under the legacy keys are
// moved to the current ones when both halves are present. A corrupt record
// is removed and the session starts logged out.
func Open(ctx context.Context, store storage.Store, tokens TokenIssuer, log logrus.FieldLogger) *Session {
	s := &Session{store: store, tokens: tokens, log: log}

	rawUser := s.read(ctx, UserKey)
	token := s.read(ctx, TokenKey)

	if rawUser == "" || token == "" {
		legacyUser := s.read(ctx, legacyUserKey)
		legacyToken := s.read(ctx, legacyTokenKey)
		if legacyUser != "" && legacyToken != "" {
			rawUser, token = legacyUser, legacyToken
			s.migrate(ctx, legacyUser, legacyToken)
		}
	}

	if rawUser == "" || token == "" {
		return s
	}

	var u User
	if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
		log.WithError(err).Warn("Discarding unparseable stored user")
		if err := store.Delete(ctx, UserKey, TokenKey); err != nil {
			log.WithError(err).Error("Failed to remove corrupt session record")
		}
		return s
	}
	u.deriveName()
	s.user = &u
	return s
}

// Current returns the logged-in user
func (s *Session) Current() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a user is held in memory
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// CheckAuth reports whether a user is present and a token is stored
func (s *Session) CheckAuth(ctx context.Context) bool {
	return s.IsAuthenticated() && s.read(ctx, TokenKey) != ""
}

// Token returns the stored session token
func (s *Session) Token(ctx context.Context) (string, bool) {
	token := s.read(ctx, TokenKey)
	return token, token != ""
}

// Login stores u as the session user. When token is empty a signed one is
// issued. The persisted token is returned.
func (s *Session) Login(ctx context.Context, u User, token string) (string, error) {
	u.deriveName()

	if token == "" {
		issued, err := s.tokens.GenerateAccessToken(u.ID, u.Username)
		if err != nil {
			return "", fmt.Errorf("failed to issue session token: %w", err)
		}
		token = issued
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u

	if err := s.write(ctx, UserKey, u); err != nil {
		return token, err
	}
	if err := s.store.Set(ctx, TokenKey, token); err != nil {
		s.log.WithError(err).Error("Failed to persist session token")
		return token, fmt.Errorf("failed to persist session token: %w", err)
	}
	return token, nil
}

// Logout forgets the user and removes the stored record
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil

	if err := s.store.Delete(ctx, UserKey, TokenKey); err != nil {
		s.log.WithError(err).Error("Failed to remove session record")
		return fmt.Errorf("failed to remove session record: %w", err)
	}
	return nil
}

// Update merges patch into the current user
func (s *Session) Update(ctx context.Context, patch Patch) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, ErrNotAuthenticated
	}

	updated := patch.apply(*s.user)
	updated.deriveName()
	s.user = &updated

	if err := s.write(ctx, UserKey, updated); err != nil {
		return updated, err
	}
	return updated, nil
}

func (s *Session) migrate(ctx context.Context, rawUser, token string) {
	entry := s.log.WithField("from", []string{legacyUserKey, legacyTokenKey})
	if err := s.store.Set(ctx, UserKey, rawUser); err != nil {
		entry.WithError(err).Error("Failed to migrate legacy session user")
		return
	}
	if err := s.store.Set(ctx, TokenKey, token); err != nil {
		entry.WithError(err).Error("Failed to migrate legacy session token")
		return
	}
	if err := s.store.Delete(ctx, legacyUserKey, legacyTokenKey); err != nil {
		entry.WithError(err).Error("Failed to remove legacy session keys")
		return
	}
	entry.Info("Migrated legacy session record")
}

func (s *Session) read(ctx context.Context, key string) string {
	value, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithError(err).WithField("key", key).Warn("Failed to read session record")
		}
		return ""
	}
	return value
}

func (s *Session) write(ctx context.Context, key string, u User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.store.Set(ctx, key, string(data)); err != nil {
		s.log.WithError(err).Error("Failed to persist session user")
		return fmt.Errorf("failed to persist session user: %w", err)
	}
	return nil
}
