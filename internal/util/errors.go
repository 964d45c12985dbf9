package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrChildNotFound       = errors.New("child not found")
	ErrTemplateNotFound    = errors.New("template not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionNotCompleted = errors.New("session is not completed")
	ErrSessionCompleted    = errors.New("session already completed")
	ErrQuestionNotFound    = errors.New("question not found")
)
