package util

import (
	"errors"
	"fmt"
)

// ErrorKind 对外稳定的错误类别
type ErrorKind string

const (
	KindReferenceNotFound     ErrorKind = "ReferenceNotFound"
	KindPrecursorMissing      ErrorKind = "PrecursorMissing"
	KindInvalidInput          ErrorKind = "InvalidInput"
	KindTransientStoreFailure ErrorKind = "TransientStoreFailure"
)

// AppError 服务层返回的业务错误，Err 为底层原因（可能为 nil）
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 让 errors.Is(err, ErrInvalidInput) 这种按类别的判断成立
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

var (
	ErrReferenceNotFound     = &AppError{Kind: KindReferenceNotFound}
	ErrPrecursorMissing      = &AppError{Kind: KindPrecursorMissing}
	ErrInvalidInput          = &AppError{Kind: KindInvalidInput}
	ErrTransientStoreFailure = &AppError{Kind: KindTransientStoreFailure}
)

func ReferenceNotFound(format string, args ...interface{}) error {
	return &AppError{Kind: KindReferenceNotFound, Message: fmt.Sprintf(format, args...)}
}

func PrecursorMissing(format string, args ...interface{}) error {
	return &AppError{Kind: KindPrecursorMissing, Message: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...interface{}) error {
	return &AppError{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// TransientFailure 包装存储或外部依赖的失败。已经是 AppError 的原样返回
func TransientFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return &AppError{Kind: KindTransientStoreFailure, Message: op + " failed", Err: err}
}

// KindOf 非 AppError 一律视为存储层的临时失败
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindTransientStoreFailure
}
