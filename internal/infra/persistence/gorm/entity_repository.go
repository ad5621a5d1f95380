package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"qa-forum/internal/repository"
)

// entityRepository holds the find/create/update/delete/vote logic shared by
// questions and answers. The type-specific parts are supplied as functions.
type entityRepository[T any] struct {
	db   *gorm.DB
	name string

	// preload prepares the query used by FindByID.
	preload func(db *gorm.DB) *gorm.DB
	// changes lists the columns written by Update.
	changes func(entity *T) map[string]any
	// dependents deletes the rows that reference the entity.
	dependents func(tx *gorm.DB, entity *T) error
	// voteRow builds the join table row of a vote.
	voteRow func(entityID, userID uint) any
}

func (r *entityRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	q := conn(ctx, r.db)
	if r.preload != nil {
		q = r.preload(q)
	}
	if err := q.First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find %s by id %d: %w", r.name, id, err)
	}
	return &entity, nil
}

func (r *entityRepository[T]) Create(ctx context.Context, entity *T) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(entity).Error; err != nil {
		return fmt.Errorf("gorm: create %s: %w", r.name, err)
	}
	return nil
}

func (r *entityRepository[T]) Update(ctx context.Context, entity *T) error {
	result := conn(ctx, r.db).Model(entity).Omit(clause.Associations).Updates(r.changes(entity))
	if result.Error != nil {
		return fmt.Errorf("gorm: update %s: %w", r.name, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *entityRepository[T]) Delete(ctx context.Context, entity *T) error {
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if r.dependents != nil {
			if err := r.dependents(tx, entity); err != nil {
				return err
			}
		}
		result := tx.Delete(entity)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("gorm: delete %s: %w", r.name, err)
	}
	return nil
}

// Vote inserts the vote row unless it already exists, so the voter set never
// holds the same user twice. The conflict is resolved by the database and
// never surfaces as an error that would abort an enclosing transaction.
func (r *entityRepository[T]) Vote(ctx context.Context, entityID, userID uint) error {
	row := r.voteRow(entityID, userID)
	if err := conn(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
		return fmt.Errorf("gorm: save %s vote (%d, user %d): %w", r.name, entityID, userID, err)
	}
	return nil
}
