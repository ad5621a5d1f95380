// Package dto holds the JSON shapes exchanged over HTTP.
package dto

// ListQuery is the paging query of the list endpoints.
type ListQuery struct {
	Page    int    `form:"page,default=0" binding:"min=0"`
	Size    int    `form:"size,default=10" binding:"min=1,max=100"`
	Keyword string `form:"keyword"`
}

type UserCreateRequest struct {
	Username  string `json:"username" binding:"required,notblank,max=191"`
	Password1 string `json:"password1" binding:"required,notblank"`
	Password2 string `json:"password2" binding:"required,notblank"`
	Email     string `json:"email" binding:"required,email,max=191"`
}

// LoginRequest accepts both form-encoded and JSON bodies.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type QuestionCreateRequest struct {
	Subject string `json:"subject" binding:"required,notblank,max=255"`
	Content string `json:"content" binding:"required,notblank"`
}

type QuestionUpdateRequest struct {
	QuestionID uint   `json:"question_id"`
	Subject    string `json:"subject" binding:"required,notblank,max=255"`
	Content    string `json:"content" binding:"required,notblank"`
}

// QuestionRef names a question in delete and vote requests.
type QuestionRef struct {
	QuestionID uint `json:"question_id"`
}

type AnswerCreateRequest struct {
	QuestionID uint   `json:"question_id"`
	Content    string `json:"content" binding:"required,notblank"`
}

type AnswerUpdateRequest struct {
	AnswerID uint   `json:"answer_id"`
	Content  string `json:"content" binding:"required,notblank"`
}

// AnswerRef names an answer in delete and vote requests.
type AnswerRef struct {
	AnswerID uint `json:"answer_id"`
}
