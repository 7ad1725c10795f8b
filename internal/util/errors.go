package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrTestNotFound       = errors.New("test not found")
	ErrTestNotPublished   = errors.New("test not published or not accessible")
	ErrSessionNotFound    = errors.New("practice session not found")
	ErrAttemptNotFound    = errors.New("attempt not found")
	ErrEmptyQuestionSet   = errors.New("no questions match the requested filters")
)
