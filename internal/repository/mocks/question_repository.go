package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"qa-forum/internal/domain"
)

// QuestionRepository is a mock of repository.QuestionRepository.
type QuestionRepository struct {
	mock.Mock
}

func (m *QuestionRepository) FindByID(ctx context.Context, id uint) (*domain.Question, error) {
	args := m.Called(ctx, id)
	q, _ := args.Get(0).(*domain.Question)
	return q, args.Error(1)
}

func (m *QuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	return m.Called(ctx, q).Error(0)
}

func (m *QuestionRepository) Update(ctx context.Context, q *domain.Question) error {
	return m.Called(ctx, q).Error(0)
}

func (m *QuestionRepository) Delete(ctx context.Context, q *domain.Question) error {
	return m.Called(ctx, q).Error(0)
}

func (m *QuestionRepository) Vote(ctx context.Context, questionID, userID uint) error {
	return m.Called(ctx, questionID, userID).Error(0)
}

func (m *QuestionRepository) List(ctx context.Context, skip, limit int, keyword string) (int64, []domain.Question, error) {
	args := m.Called(ctx, skip, limit, keyword)
	list, _ := args.Get(1).([]domain.Question)
	return args.Get(0).(int64), list, args.Error(2)
}

func (m *QuestionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
