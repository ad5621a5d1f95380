package dto

import (
	"time"

	"qa-forum/internal/domain"
)

type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Answer struct {
	ID         uint       `json:"id"`
	Content    string     `json:"content"`
	CreateDate time.Time  `json:"create_date"`
	ModifyDate *time.Time `json:"modify_date"`
	User       *User      `json:"user"`
	QuestionID uint       `json:"question_id"`
	Voter      []User     `json:"voter"`
}

type Question struct {
	ID         uint       `json:"id"`
	Subject    string     `json:"subject"`
	Content    string     `json:"content"`
	CreateDate time.Time  `json:"create_date"`
	ModifyDate *time.Time `json:"modify_date"`
	User       *User      `json:"user"`
	Answers    []Answer   `json:"answers"`
	Voter      []User     `json:"voter"`
}

type QuestionList struct {
	Total        int64      `json:"total"`
	QuestionList []Question `json:"question_list"`
}

type AnswerList struct {
	Total      int64    `json:"total"`
	AnswerList []Answer `json:"answer_list"`
}

// Token is returned by a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
}

// NewUser converts a domain user. The password hash is never exposed.
func NewUser(u domain.User) User {
	return User{ID: u.ID, Username: u.Username, Email: u.Email}
}

func newAuthor(u domain.User) *User {
	// An unloaded association has a zero id.
	if u.ID == 0 {
		return nil
	}
	author := NewUser(u)
	return &author
}

func newVoters(users []domain.User) []User {
	voters := make([]User, 0, len(users))
	for _, u := range users {
		voters = append(voters, NewUser(u))
	}
	return voters
}

func NewAnswer(a domain.Answer) Answer {
	return Answer{
		ID:         a.ID,
		Content:    a.Content,
		CreateDate: a.CreateDate,
		ModifyDate: a.ModifyDate,
		User:       newAuthor(a.User),
		QuestionID: a.QuestionID,
		Voter:      newVoters(a.Voters),
	}
}

func NewQuestion(q domain.Question) Question {
	answers := make([]Answer, 0, len(q.Answers))
	for _, a := range q.Answers {
		answers = append(answers, NewAnswer(a))
	}
	return Question{
		ID:         q.ID,
		Subject:    q.Subject,
		Content:    q.Content,
		CreateDate: q.CreateDate,
		ModifyDate: q.ModifyDate,
		User:       newAuthor(q.User),
		Answers:    answers,
		Voter:      newVoters(q.Voters),
	}
}

func NewQuestionList(total int64, questions []domain.Question) QuestionList {
	list := QuestionList{Total: total, QuestionList: make([]Question, 0, len(questions))}
	for _, q := range questions {
		list.QuestionList = append(list.QuestionList, NewQuestion(q))
	}
	return list
}

func NewAnswerList(total int64, answers []domain.Answer) AnswerList {
	list := AnswerList{Total: total, AnswerList: make([]Answer, 0, len(answers))}
	for _, a := range answers {
		list.AnswerList = append(list.AnswerList, NewAnswer(a))
	}
	return list
}
