package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"qa-forum/internal/domain"
)

// GormQuestionRepository is the GORM implementation of
// repository.QuestionRepository.
type GormQuestionRepository struct {
	entityRepository[domain.Question]
}

// NewGormQuestionRepository creates a GormQuestionRepository.
func NewGormQuestionRepository(db *gorm.DB) *GormQuestionRepository {
	if db == nil {
		panic("database connection cannot be nil for GormQuestionRepository")
	}
	return &GormQuestionRepository{entityRepository[domain.Question]{
		db:      db,
		name:    "question",
		preload: preloadQuestionDetail,
		changes: func(q *domain.Question) map[string]any {
			return map[string]any{
				"subject":     q.Subject,
				"content":     q.Content,
				"modify_date": q.ModifyDate,
			}
		},
		dependents: deleteQuestionDependents,
		voteRow: func(questionID, userID uint) any {
			return &domain.QuestionVoter{QuestionID: questionID, UserID: userID}
		},
	}}
}

// List runs the keyword search and returns the matching total and one page,
// newest first.
func (r *GormQuestionRepository) List(ctx context.Context, skip, limit int, keyword string) (int64, []domain.Question, error) {
	var total int64
	err := conn(ctx, r.db).Model(&domain.Question{}).
		Scopes(matchKeyword(keyword)).
		Count(&total).Error
	if err != nil {
		return 0, nil, fmt.Errorf("gorm: count questions (keyword '%s'): %w", keyword, err)
	}

	questions := make([]domain.Question, 0, limit)
	err = conn(ctx, r.db).
		Scopes(matchKeyword(keyword), preloadQuestionList).
		Order("questions.create_date DESC").
		Order("questions.id DESC").
		Offset(skip).
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return 0, nil, fmt.Errorf("gorm: list questions (skip %d, limit %d, keyword '%s'): %w", skip, limit, keyword, err)
	}
	return total, questions, nil
}

// Count returns the number of questions.
func (r *GormQuestionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&domain.Question{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gorm: count questions: %w", err)
	}
	return count, nil
}

// matchKeyword keeps the questions whose subject, content or author username
// contains keyword, ignoring case. An empty keyword keeps everything.
func matchKeyword(keyword string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if keyword == "" {
			return db
		}
		// Both sides go through the database's LOWER so they fold identically.
		pattern := "%" + keyword + "%"
		authors := db.Session(&gorm.Session{NewDB: true}).
			Model(&domain.User{}).
			Select("id").
			Where("LOWER(username) LIKE LOWER(?)", pattern)
		return db.Where(
			"LOWER(questions.subject) LIKE LOWER(?) OR LOWER(questions.content) LIKE LOWER(?) OR questions.user_id IN (?)",
			pattern, pattern, authors,
		)
	}
}

func answersOldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("answers.create_date ASC").Order("answers.id ASC")
}

func preloadQuestionList(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Answers", answersOldestFirst).Preload("Voters")
}

func preloadQuestionDetail(db *gorm.DB) *gorm.DB {
	return db.Preload("User").
		Preload("Answers", answersOldestFirst).
		Preload("Answers.User").
		Preload("Answers.Voters").
		Preload("Voters")
}

// deleteQuestionDependents removes the answers of q and every vote cast on q
// or on its answers.
func deleteQuestionDependents(tx *gorm.DB, q *domain.Question) error {
	answerIDs := tx.Session(&gorm.Session{NewDB: true}).
		Model(&domain.Answer{}).
		Select("id").
		Where("question_id = ?", q.ID)
	if err := tx.Where("answer_id IN (?)", answerIDs).Delete(&domain.AnswerVoter{}).Error; err != nil {
		return err
	}
	if err := tx.Where("question_id = ?", q.ID).Delete(&domain.Answer{}).Error; err != nil {
		return err
	}
	return tx.Where("question_id = ?", q.ID).Delete(&domain.QuestionVoter{}).Error
}
