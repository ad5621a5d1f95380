package domain

import "time"

// Question is a post that other users answer and vote on.
type Question struct {
	ID         uint      `gorm:"primaryKey"`
	Subject    string    `gorm:"type:varchar(255);not null"`
	Content    string    `gorm:"type:text;not null"`
	CreateDate time.Time `gorm:"index;not null"`
	ModifyDate *time.Time
	UserID     uint     `gorm:"index;not null"`
	User       User     `gorm:"constraint:OnDelete:RESTRICT"`
	Answers    []Answer `gorm:"constraint:OnDelete:CASCADE"`
	Voters     []User   `gorm:"many2many:question_voter"`
}

// OwnerID reports the id of the user who posted the question.
func (q *Question) OwnerID() uint { return q.UserID }

// QuestionVoter is one row of the question_voter join table.
type QuestionVoter struct {
	QuestionID uint `gorm:"primaryKey"`
	UserID     uint `gorm:"primaryKey"`
}

func (QuestionVoter) TableName() string { return "question_voter" }
