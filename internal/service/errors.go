package service

import "errors"

var (
	ErrValidation           = errors.New("required field is empty")
	ErrUserNotFound         = errors.New("user not found")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrAnswerNotFound       = errors.New("answer not found")
	ErrPermissionDenied     = errors.New("permission denied: only the author may change this entry")
	ErrUserExists           = errors.New("registration failed: username or email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: wrong username or password")
	ErrInternalServer       = errors.New("internal server error")
)
