package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"qa-forum/internal/repository"
	"qa-forum/internal/service"
)

// Seed account created on an empty database.
const (
	SeedUsername = "testuser"
	SeedEmail    = "test@example.com"
	SeedPassword = "testpassword"
)

var seedQuestions = []struct{ subject, content string }{
	{"Test question 1", "Test content 1"},
	{"Test question 2", "Test content 2"},
}

// Seeder fills empty tables with a demo account and two questions.
type Seeder struct {
	Users           repository.UserRepository
	Questions       repository.QuestionRepository
	Auth            *service.AuthService
	QuestionService *service.QuestionService
	Log             *logrus.Logger
}

// Seed creates the demo user when there are no users and the demo questions
// when there are no questions. Existing data is left alone.
func (s *Seeder) Seed(ctx context.Context) error {
	userCount, err := s.Users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if userCount == 0 {
		user, err := s.Auth.Register(ctx, SeedUsername, SeedPassword, SeedPassword, SeedEmail)
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		s.Log.WithField("user_id", user.ID).Info("Seeded test user")
	}

	questionCount, err := s.Questions.Count(ctx)
	if err != nil {
		return fmt.Errorf("count questions: %w", err)
	}
	if questionCount > 0 {
		return nil
	}

	author, err := s.Users.FindByUsername(ctx, SeedUsername)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.Log.Warn("No seed user present, skipping question seeding")
			return nil
		}
		return fmt.Errorf("find seed user: %w", err)
	}
	for _, q := range seedQuestions {
		if _, err := s.QuestionService.Create(ctx, author.ID, q.subject, q.content); err != nil {
			return fmt.Errorf("seed question %q: %w", q.subject, err)
		}
	}
	s.Log.WithField("count", len(seedQuestions)).Info("Seeded test questions")
	return nil
}
