package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"qa-forum/internal/domain"
	"qa-forum/internal/repository"
)

// authorizeOwner allows a change only when the acting user owns the entity.
func authorizeOwner(ownerID, actorID uint) error {
	if ownerID != actorID {
		return ErrPermissionDenied
	}
	return nil
}

// loadOwned resolves an entity through find and checks that actorID owns it.
// A missing entity is reported as notFound.
func loadOwned[E domain.Owned](ctx context.Context, find func(context.Context, uint) (E, error), id, actorID uint, notFound error) (E, error) {
	entity, err := find(ctx, id)
	if err != nil {
		var zero E
		if errors.Is(err, repository.ErrNotFound) {
			return zero, notFound
		}
		return zero, err
	}
	if err := authorizeOwner(entity.OwnerID(), actorID); err != nil {
		var zero E
		return zero, err
	}
	return entity, nil
}

// notBlank rejects values that are empty or only whitespace. The arguments
// are name/value pairs.
func notBlank(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return fmt.Errorf("%w: %s", ErrValidation, pairs[i])
		}
	}
	return nil
}

// pageBounds turns a page number and size into an offset and limit.
func pageBounds(page, size int) (skip, limit int, err error) {
	if page < 0 {
		return 0, 0, fmt.Errorf("%w: page must not be negative", ErrValidation)
	}
	if size < 1 || size > MaxPageSize {
		return 0, 0, fmt.Errorf("%w: size must be between 1 and %d", ErrValidation, MaxPageSize)
	}
	return page * size, size, nil
}

// MaxPageSize is the largest page a list operation returns.
const MaxPageSize = 100
