package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"qa-forum/internal/domain"
	"qa-forum/internal/repository"
)

// AnswerService holds the answer use cases.
type AnswerService struct {
	answers   repository.AnswerRepository
	questions repository.QuestionRepository
	tx        repository.Transactor
	now       func() time.Time
}

// NewAnswerService creates an AnswerService.
func NewAnswerService(answers repository.AnswerRepository, questions repository.QuestionRepository, tx repository.Transactor) *AnswerService {
	if answers == nil || questions == nil || tx == nil {
		panic("AnswerRepository, QuestionRepository and Transactor cannot be nil for AnswerService")
	}
	return &AnswerService{answers: answers, questions: questions, tx: tx, now: time.Now}
}

// List returns the total number of answers and the requested page.
func (s *AnswerService) List(ctx context.Context, page, size int) (int64, []domain.Answer, error) {
	skip, limit, err := pageBounds(page, size)
	if err != nil {
		return 0, nil, err
	}
	total, answers, err := s.answers.List(ctx, skip, limit)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"page": page, "size": size}).
			Error("AnswerService.List: Repository error")
		return 0, nil, ErrInternalServer
	}
	return total, answers, nil
}

// Get returns one answer.
func (s *AnswerService) Get(ctx context.Context, id uint) (*domain.Answer, error) {
	answer, err := s.answers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAnswerNotFound
		}
		logrus.WithError(err).WithField("answer_id", id).Error("AnswerService.Get: Repository error")
		return nil, ErrInternalServer
	}
	return answer, nil
}

// Create posts an answer to questionID on behalf of userID.
func (s *AnswerService) Create(ctx context.Context, userID, questionID uint, content string) (*domain.Answer, error) {
	if err := notBlank("content", content); err != nil {
		return nil, err
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "question_id": questionID})

	answer := &domain.Answer{
		Content:    content,
		CreateDate: s.now(),
		UserID:     userID,
		QuestionID: questionID,
	}
	var created *domain.Answer
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.questions.FindByID(ctx, questionID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}
		if err := s.answers.Create(ctx, answer); err != nil {
			return err
		}
		var err error
		created, err = s.answers.FindByID(ctx, answer.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		logCtx.WithError(err).Error("AnswerService.Create: Repository error")
		return nil, ErrInternalServer
	}
	logCtx.WithField("answer_id", created.ID).Info("Answer created")
	return created, nil
}

// Update replaces the content. Only the author may update.
func (s *AnswerService) Update(ctx context.Context, userID, answerID uint, content string) error {
	if err := notBlank("content", content); err != nil {
		return err
	}
	return s.mutate(ctx, userID, answerID, "update", func(ctx context.Context, a *domain.Answer) error {
		modified := s.now()
		a.Content = content
		a.ModifyDate = &modified
		return s.answers.Update(ctx, a)
	})
}

// Delete removes the answer. Only the author may delete.
func (s *AnswerService) Delete(ctx context.Context, userID, answerID uint) error {
	return s.mutate(ctx, userID, answerID, "delete", s.answers.Delete)
}

// Vote adds userID to the voter set of the answer. Voting again has no
// further effect.
func (s *AnswerService) Vote(ctx context.Context, userID, answerID uint) error {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "answer_id": answerID})
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.answers.FindByID(ctx, answerID); err != nil {
			return err
		}
		return s.answers.Vote(ctx, answerID, userID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAnswerNotFound
		}
		logCtx.WithError(err).Error("AnswerService.Vote: Repository error")
		return ErrInternalServer
	}
	logCtx.Debug("Answer vote recorded")
	return nil
}

func (s *AnswerService) mutate(ctx context.Context, userID, answerID uint, action string, change func(context.Context, *domain.Answer) error) error {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "answer_id": answerID, "action": action})
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		answer, err := loadOwned(ctx, s.answers.FindByID, answerID, userID, ErrAnswerNotFound)
		if err != nil {
			return err
		}
		return change(ctx, answer)
	})
	switch {
	case err == nil:
		logCtx.Info("Answer changed")
		return nil
	case errors.Is(err, ErrAnswerNotFound), errors.Is(err, repository.ErrNotFound):
		return ErrAnswerNotFound
	case errors.Is(err, ErrPermissionDenied):
		logCtx.Warn("Answer change rejected: not the author")
		return ErrPermissionDenied
	default:
		logCtx.WithError(err).Error("AnswerService: Repository error")
		return ErrInternalServer
	}
}
