// Package session is the client's credential store: the signed-in user and
// access token in memory, and the refresh token in a persistent TokenStore.
//
// A Session is created by the application shell at startup and handed to the
// transport; nothing in the client reaches for process-wide globals.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/google/uuid"
)

// Session is safe for concurrent use.
type Session struct {
	mu          sync.RWMutex
	user        *models.User
	accessToken string

	tokens TokenStore
}

func New(tokens TokenStore) *Session {
	return &Session{tokens: tokens}
}

// IsEmpty reports whether no user has signed in during this process.
func (s *Session) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user == nil
}

// SetUser stores u without validation.
func (s *Session) SetUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
}

func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) UserID() (uuid.UUID, bool) {
	u, ok := s.User()
	return u.ID, ok
}

func (s *Session) UserName() (string, bool) {
	u, ok := s.User()
	return u.Username, ok
}

func (s *Session) UserEmail() (string, bool) {
	u, ok := s.User()
	return u.Email, ok
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

// RefreshToken reads the persisted refresh token. It is not cached, so a
// token written by another process is picked up on the next call.
func (s *Session) RefreshToken(ctx context.Context) (string, bool, error) {
	token, ok, err := s.tokens.Load(ctx)
	if err != nil {
		return "", false, fmt.Errorf("load refresh token: %w", err)
	}
	return token, ok, nil
}

func (s *Session) SetRefreshToken(ctx context.Context, token string) error {
	if err := s.tokens.Save(ctx, token); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// SaveLogin records a successful login or register: the refresh token is
// persisted first, then the access token and user are set in memory.
func (s *Session) SaveLogin(ctx context.Context, login models.UserLogin) error {
	var err error
	if rec, ok := s.tokens.(loginRecorder); ok {
		err = rec.SaveLogin(ctx, login.RefreshToken, login.UserData.Email)
	} else {
		err = s.tokens.Save(ctx, login.RefreshToken)
	}
	if err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := login.UserData
	s.user = &u
	s.accessToken = login.AccessToken
	return nil
}

// Clear ends the session: the user and access token are dropped and the
// persisted refresh token is deleted.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.accessToken = ""
	s.mu.Unlock()

	if err := s.tokens.Delete(ctx); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}
