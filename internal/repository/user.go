package repository

import (
	"context"

	"qa-forum/internal/domain"
)

// UserRepository stores and looks up forum users.
type UserRepository interface {
	// FindByUsername returns ErrNotFound when no user has that name.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID returns ErrNotFound when the id does not resolve.
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// ExistsByUsernameOrEmail reports whether either value is already taken.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// Save inserts or updates the user. A unique constraint violation is
	// reported as ErrDuplicateEntry.
	Save(ctx context.Context, user *domain.User) error

	// Count returns the number of registered users.
	Count(ctx context.Context) (int64, error)
}
