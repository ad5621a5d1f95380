package repository

import (
	"context"

	"qa-forum/internal/domain"
)

// QuestionRepository stores questions and runs the paginated keyword search.
type QuestionRepository interface {
	EntityRepository[domain.Question]

	// List returns the number of questions matching keyword and the page
	// [skip, skip+limit) of them, newest first. An empty keyword matches all.
	List(ctx context.Context, skip, limit int, keyword string) (int64, []domain.Question, error)

	Count(ctx context.Context) (int64, error)
}
