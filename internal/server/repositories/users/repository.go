// Package users is the credential store: a single table mapping unique
// usernames to password hashes.
package users

import (
	"context"

	"github.com/dmitrijs2005/marketpulse/internal/server/models"
)

// Repository looks users up by exact username and inserts new ones.
//
// GetUserByLogin returns common.ErrorNotFound on a miss. Create fills
// user.ID and returns common.ErrorConflict when the username is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
}
