package util

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("no authorization token provided")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrNotConfigured      = errors.New("database not configured")
	ErrInterviewNotFound  = errors.New("interview not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrInvalidTransition  = errors.New("invalid interview status transition")
	ErrNoQuestions        = errors.New("interview has no questions")
	ErrNotInProgress      = errors.New("interview is not in progress")
	ErrInvalidFileType    = errors.New("invalid file type")
	ErrInvalidVideoExt    = errors.New("unsupported video format")
	ErrInvalidResumeExt   = errors.New("unsupported resume format")
)

// QueryError 数据存储查询失败，Message 面向调用方，Err 为上游原始错误
type QueryError struct {
	Message string
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func NewQueryError(message string, err error) error {
	return &QueryError{Message: message, Err: err}
}
