// Package store provides user persistence behind a single UserStore
// interface with interchangeable in-memory and Postgres backends.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/minhvu-dev/crm-backend/internal/models"
)

// ErrNotFound is returned by lookups that match no user.
var ErrNotFound = errors.New("store: user not found")

// UserStore is the persistence contract of the auth service.
//
// Email lookups are case-insensitive; emails are stored lower-cased and
// FindByEmail lower-cases its argument before matching.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)

	// Insert persists a new user, assigns its ID and CreatedAt, and
	// returns the stored record.
	Insert(ctx context.Context, u *models.User) (*models.User, error)

	// UpdateLastLogin records the time and origin address of a login.
	UpdateLastLogin(ctx context.Context, id int64, at time.Time, ip string) error
}
