package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"qa-forum/internal/domain"
	"qa-forum/internal/repository"
)

// QuestionService holds the question use cases.
type QuestionService struct {
	questions repository.QuestionRepository
	tx        repository.Transactor
	now       func() time.Time
}

// NewQuestionService creates a QuestionService.
func NewQuestionService(questions repository.QuestionRepository, tx repository.Transactor) *QuestionService {
	if questions == nil || tx == nil {
		panic("QuestionRepository and Transactor cannot be nil for QuestionService")
	}
	return &QuestionService{questions: questions, tx: tx, now: time.Now}
}

// List returns the number of questions matching keyword and the requested
// page of them, newest first.
func (s *QuestionService) List(ctx context.Context, page, size int, keyword string) (int64, []domain.Question, error) {
	skip, limit, err := pageBounds(page, size)
	if err != nil {
		return 0, nil, err
	}
	total, questions, err := s.questions.List(ctx, skip, limit, keyword)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"page": page, "size": size, "keyword": keyword}).
			Error("QuestionService.List: Repository error")
		return 0, nil, ErrInternalServer
	}
	return total, questions, nil
}

// Get returns one question with its answers and voters.
func (s *QuestionService) Get(ctx context.Context, id uint) (*domain.Question, error) {
	question, err := s.questions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		logrus.WithError(err).WithField("question_id", id).Error("QuestionService.Get: Repository error")
		return nil, ErrInternalServer
	}
	return question, nil
}

// Create posts a new question on behalf of userID.
func (s *QuestionService) Create(ctx context.Context, userID uint, subject, content string) (*domain.Question, error) {
	if err := notBlank("subject", subject, "content", content); err != nil {
		return nil, err
	}
	question := &domain.Question{
		Subject:    subject,
		Content:    content,
		CreateDate: s.now(),
		UserID:     userID,
	}
	var created *domain.Question
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.questions.Create(ctx, question); err != nil {
			return err
		}
		// Reload so the author comes back with the new question.
		var err error
		created, err = s.questions.FindByID(ctx, question.ID)
		return err
	})
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("QuestionService.Create: Repository error")
		return nil, ErrInternalServer
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "question_id": created.ID}).Info("Question created")
	return created, nil
}

// Update replaces subject and content. Only the author may update.
func (s *QuestionService) Update(ctx context.Context, userID, questionID uint, subject, content string) error {
	if err := notBlank("subject", subject, "content", content); err != nil {
		return err
	}
	return s.mutate(ctx, userID, questionID, "update", func(ctx context.Context, q *domain.Question) error {
		modified := s.now()
		q.Subject = subject
		q.Content = content
		q.ModifyDate = &modified
		return s.questions.Update(ctx, q)
	})
}

// Delete removes the question and its answers. Only the author may delete.
func (s *QuestionService) Delete(ctx context.Context, userID, questionID uint) error {
	return s.mutate(ctx, userID, questionID, "delete", s.questions.Delete)
}

// Vote adds userID to the voter set of the question. Voting again has no
// further effect.
func (s *QuestionService) Vote(ctx context.Context, userID, questionID uint) error {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "question_id": questionID})
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.questions.FindByID(ctx, questionID); err != nil {
			return err
		}
		return s.questions.Vote(ctx, questionID, userID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuestionNotFound
		}
		logCtx.WithError(err).Error("QuestionService.Vote: Repository error")
		return ErrInternalServer
	}
	logCtx.Debug("Question vote recorded")
	return nil
}

// mutate loads the question, checks ownership and applies change, all in one
// transaction.
func (s *QuestionService) mutate(ctx context.Context, userID, questionID uint, action string, change func(context.Context, *domain.Question) error) error {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "question_id": questionID, "action": action})
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		question, err := loadOwned(ctx, s.questions.FindByID, questionID, userID, ErrQuestionNotFound)
		if err != nil {
			return err
		}
		return change(ctx, question)
	})
	switch {
	case err == nil:
		logCtx.Info("Question changed")
		return nil
	case errors.Is(err, ErrQuestionNotFound), errors.Is(err, repository.ErrNotFound):
		return ErrQuestionNotFound
	case errors.Is(err, ErrPermissionDenied):
		logCtx.Warn("Question change rejected: not the author")
		return ErrPermissionDenied
	default:
		logCtx.WithError(err).Error("QuestionService: Repository error")
		return ErrInternalServer
	}
}
