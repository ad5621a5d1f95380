package repository

import (
	"context"

	"qa-forum/internal/domain"
)

// AnswerRepository stores answers.
type AnswerRepository interface {
	EntityRepository[domain.Answer]

	// List returns the total number of answers and one page of them, newest first.
	List(ctx context.Context, skip, limit int) (int64, []domain.Answer, error)
}
