// Package services contains application services for the marketpulse CLI.
// This file defines the authentication service: register, login/logout,
// identity lookup and a liveness probe.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/marketpulse/internal/client/client"
	"github.com/dmitrijs2005/marketpulse/internal/client/models"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a new user on the server.
//   - Login: obtain a bearer token; the session is held in memory only.
//   - Logout: forget the session.
//   - WhoAmI: resolve the session to its user on the server.
//   - UserName: name of the logged-in user, "" when logged out.
//   - Ping: check server liveness.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) (*models.User, error)
	Login(ctx context.Context, username string, password []byte) error
	Logout()
	WhoAmI(ctx context.Context) (*models.User, error)
	UserName() string
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client

	mu       sync.RWMutex
	userName string
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

// Register trims the username and creates the account. It does not log in.
func (a *authService) Register(ctx context.Context, username string, password []byte) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return nil, fmt.Errorf("username and password are required")
	}
	return a.client.Register(ctx, username, string(password))
}

func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return fmt.Errorf("username and password are required")
	}

	if err := a.client.Login(ctx, username, string(password)); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	a.mu.Lock()
	a.userName = username
	a.mu.Unlock()
	return nil
}

func (a *authService) Logout() {
	a.client.Logout()

	a.mu.Lock()
	a.userName = ""
	a.mu.Unlock()
}

// WhoAmI logs the session out locally when the server no longer accepts
// the token (e.g. it expired).
func (a *authService) WhoAmI(ctx context.Context) (*models.User, error) {
	user, err := a.client.Me(ctx)
	if err != nil {
		a.dropExpired(err)
		return nil, err
	}
	return user, nil
}

func (a *authService) UserName() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.userName
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) dropExpired(err error) {
	if isUnauthorized(err) {
		a.Logout()
	}
}
