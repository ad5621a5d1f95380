package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"qa-forum/internal/domain"
)

// MigrateDB creates or updates the forum schema. It is safe to run on every
// start.
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	// The vote join tables use explicit models so that their composite
	// primary key rejects duplicate votes.
	if err := db.SetupJoinTable(&domain.Question{}, "Voters", &domain.QuestionVoter{}); err != nil {
		return fmt.Errorf("failed to set up question_voter join table: %w", err)
	}
	if err := db.SetupJoinTable(&domain.Answer{}, "Voters", &domain.AnswerVoter{}); err != nil {
		return fmt.Errorf("failed to set up answer_voter join table: %w", err)
	}

	err := db.AutoMigrate(
		&domain.User{},
		&domain.Question{},
		&domain.Answer{},
		&domain.QuestionVoter{},
		&domain.AnswerVoter{},
	)
	if err != nil {
		logrus.Errorf("Failed to auto-migrate tables: %v", err)
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}

	logrus.Info("Database migration completed successfully")
	return nil
}
