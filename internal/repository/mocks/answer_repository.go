package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"qa-forum/internal/domain"
)

// AnswerRepository is a mock of repository.AnswerRepository.
type AnswerRepository struct {
	mock.Mock
}

func (m *AnswerRepository) FindByID(ctx context.Context, id uint) (*domain.Answer, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Answer)
	return a, args.Error(1)
}

func (m *AnswerRepository) Create(ctx context.Context, a *domain.Answer) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AnswerRepository) Update(ctx context.Context, a *domain.Answer) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AnswerRepository) Delete(ctx context.Context, a *domain.Answer) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AnswerRepository) Vote(ctx context.Context, answerID, userID uint) error {
	return m.Called(ctx, answerID, userID).Error(0)
}

func (m *AnswerRepository) List(ctx context.Context, skip, limit int) (int64, []domain.Answer, error) {
	args := m.Called(ctx, skip, limit)
	list, _ := args.Get(1).([]domain.Answer)
	return args.Get(0).(int64), list, args.Error(2)
}
