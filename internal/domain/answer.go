package domain

import "time"

// Answer is a reply to a question.
type Answer struct {
	ID         uint      `gorm:"primaryKey"`
	Content    string    `gorm:"type:text;not null"`
	CreateDate time.Time `gorm:"index;not null"`
	ModifyDate *time.Time
	UserID     uint   `gorm:"index;not null"`
	User       User   `gorm:"constraint:OnDelete:RESTRICT"`
	QuestionID uint   `gorm:"index;not null"`
	Voters     []User `gorm:"many2many:answer_voter"`
}

// OwnerID reports the id of the user who posted the answer.
func (a *Answer) OwnerID() uint { return a.UserID }

// AnswerVoter is one row of the answer_voter join table.
type AnswerVoter struct {
	AnswerID uint `gorm:"primaryKey"`
	UserID   uint `gorm:"primaryKey"`
}

func (AnswerVoter) TableName() string { return "answer_voter" }
