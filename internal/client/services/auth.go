// Package services contains the use cases the bookshelf shell runs. Each
// service calls the resource clients and unwraps their envelopes into plain
// values and errors.
//
// This file defines the authentication service: register, login, logout,
// identity of the current user and a liveness probe.
package services

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/tokens"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register, Login: authenticate against the server. On success the
//     session holds the user and the refresh token is persisted.
//   - Logout: forget the user and delete the persisted refresh token.
//   - WhoAmI: the current user and the claims of the held access token.
//   - LastEmail: the email of the last successful login, if remembered.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//
// Passwords are wiped after use.
type AuthService interface {
	Register(ctx context.Context, username, email string, password []byte) (models.User, error)
	Login(ctx context.Context, email string, password []byte) (models.User, error)
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) (Identity, error)
	LastEmail(ctx context.Context) string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Session is the part of the credential store the services read.
type Session interface {
	User() (models.User, bool)
	AccessToken() string
	Clear(ctx context.Context) error
}

// LoginHints remembers details of past logins.
type LoginHints interface {
	LastEmail(ctx context.Context) (string, error)
}

// Identity describes the signed-in user. Claims is nil when no access token
// is held or it cannot be read.
type Identity struct {
	User   models.User
	Claims *tokens.Claims
}

type authService struct {
	client client.Client
	sess   Session
	hints  LoginHints
	log    logging.Logger
}

// NewAuthService constructs an AuthService. hints may be nil.
func NewAuthService(c client.Client, sess Session, hints LoginHints, log logging.Logger) AuthService {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &authService{client: c, sess: sess, hints: hints, log: log}
}

func (a *authService) Register(ctx context.Context, username, email string, password []byte) (models.User, error) {
	defer common.WipeByteArray(password)
	return unwrap(a.client.Register(ctx, username, email, string(password)))
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (models.User, error) {
	defer common.WipeByteArray(password)
	return unwrap(a.client.Login(ctx, email, string(password)))
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sess.Clear(ctx)
}

func (a *authService) WhoAmI(ctx context.Context) (Identity, error) {
	u, ok := a.sess.User()
	if !ok {
		return Identity{}, common.ErrNotLoggedIn
	}

	id := Identity{User: u}
	if token := a.sess.AccessToken(); token != "" {
		claims, err := tokens.Parse(token)
		if err != nil {
			a.log.Debug(ctx, "access token unreadable", "error", err)
		} else {
			id.Claims = claims
		}
	}
	return id, nil
}

func (a *authService) LastEmail(ctx context.Context) string {
	if a.hints == nil {
		return ""
	}
	email, err := a.hints.LastEmail(ctx)
	if err != nil {
		a.log.Debug(ctx, "last email unavailable", "error", err)
		return ""
	}
	return email
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
