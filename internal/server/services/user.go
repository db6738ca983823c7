// Package services contains server-side business logic. UserService covers
// registration, password login and resolving bearer tokens to users.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/marketpulse/internal/common"
	"github.com/dmitrijs2005/marketpulse/internal/dbx"
	"github.com/dmitrijs2005/marketpulse/internal/server/auth"
	"github.com/dmitrijs2005/marketpulse/internal/server/config"
	"github.com/dmitrijs2005/marketpulse/internal/server/models"
	"github.com/dmitrijs2005/marketpulse/internal/server/repositories/repomanager"
)

// Token is the result of a successful login.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
}

// UserService provides authentication-related operations:
// - Register: validate and store a new user with a bcrypt digest
// - Login: verify credentials and mint an access token
// - Authenticate: resolve a bearer token back to a stored user
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenManager

	// dummyHash is compared against on unknown usernames so that a miss
	// costs the same bcrypt round as a wrong password.
	dummyHash string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) (*UserService, error) {
	tokens, err := auth.NewTokenManager(cfg.SecretKey, cfg.AccessTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	return NewUserServiceWithTokens(db, m, auth.NewPasswordHasher(cfg.BcryptCost), tokens)
}

// NewUserServiceWithTokens is NewUserService with explicit collaborators.
func NewUserServiceWithTokens(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher, tokens *auth.TokenManager) (*UserService, error) {
	dummy, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, err
	}
	dummyHash, err := hasher.Hash(dummy)
	if err != nil {
		return nil, err
	}

	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		dummyHash:   dummyHash,
	}, nil
}

// Register creates a user. The username check and the insert share one
// transaction; the UNIQUE constraint still catches a concurrent winner.
// Errors: common.ErrorValidation, common.ErrorConflict, or a wrapped db error.
func (s *UserService) Register(ctx context.Context, userName, password string) (*models.User, error) {
	if userName == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByLogin(ctx, userName)
		switch {
		case err == nil:
			return common.ErrorConflict
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		created, err = repo.Create(ctx, &models.User{UserName: userName, PasswordHash: hash})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// Login verifies the password and returns a bearer token. Unknown users and
// wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, userName, password string) (*Token, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	access, err := s.tokens.Issue(user.UserName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &Token{AccessToken: access, TokenType: common.TokenType, ExpiresIn: s.tokens.ValidityDuration()}, nil
}

// Authenticate resolves a bearer token to its user. A bad token and an
// unknown subject both match common.ErrorUnauthorized; the first also
// matches common.ErrInvalidToken. Storage failures match common.ErrorInternal.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: unknown subject", common.ErrorUnauthorized)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return user, nil
}

// Ping checks database connectivity for readiness probes.
func (s *UserService) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
