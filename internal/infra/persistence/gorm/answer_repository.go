package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"qa-forum/internal/domain"
)

// GormAnswerRepository is the GORM implementation of repository.AnswerRepository.
type GormAnswerRepository struct {
	entityRepository[domain.Answer]
}

// NewGormAnswerRepository creates a GormAnswerRepository.
func NewGormAnswerRepository(db *gorm.DB) *GormAnswerRepository {
	if db == nil {
		panic("database connection cannot be nil for GormAnswerRepository")
	}
	return &GormAnswerRepository{entityRepository[domain.Answer]{
		db:      db,
		name:    "answer",
		preload: preloadAnswer,
		changes: func(a *domain.Answer) map[string]any {
			return map[string]any{
				"content":     a.Content,
				"modify_date": a.ModifyDate,
			}
		},
		dependents: func(tx *gorm.DB, a *domain.Answer) error {
			return tx.Where("answer_id = ?", a.ID).Delete(&domain.AnswerVoter{}).Error
		},
		voteRow: func(answerID, userID uint) any {
			return &domain.AnswerVoter{AnswerID: answerID, UserID: userID}
		},
	}}
}

// List returns the total number of answers and one page, newest first.
func (r *GormAnswerRepository) List(ctx context.Context, skip, limit int) (int64, []domain.Answer, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&domain.Answer{}).Count(&total).Error; err != nil {
		return 0, nil, fmt.Errorf("gorm: count answers: %w", err)
	}
	answers := make([]domain.Answer, 0, limit)
	err := conn(ctx, r.db).
		Scopes(preloadAnswer).
		Order("answers.create_date DESC").
		Order("answers.id DESC").
		Offset(skip).
		Limit(limit).
		Find(&answers).Error
	if err != nil {
		return 0, nil, fmt.Errorf("gorm: list answers (skip %d, limit %d): %w", skip, limit, err)
	}
	return total, answers, nil
}

func preloadAnswer(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Voters")
}
