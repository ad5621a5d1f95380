package repository

import "context"

// EntityRepository is the storage capability shared by questions and answers.
type EntityRepository[T any] interface {
	// FindByID loads the entity with its owner and voters. It returns
	// ErrNotFound when the id does not resolve.
	FindByID(ctx context.Context, id uint) (*T, error)

	Create(ctx context.Context, entity *T) error

	// Update persists the editable fields and the modification time.
	Update(ctx context.Context, entity *T) error

	// Delete removes the entity together with everything that depends on it.
	Delete(ctx context.Context, entity *T) error

	// Vote records that the user voted for the entity. Voting again is a no-op.
	Vote(ctx context.Context, entityID, userID uint) error
}
