package util

import "errors"

var (
	// ErrInvalidInput 请求内容不合法，生成流程不会执行
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal 简化或出题过程中的意外错误
	ErrInternal = errors.New("internal failure")
)

// InvalidInput 返回带原因的输入错误，errors.Is(err, ErrInvalidInput) 为 true，
// Error() 只包含面向调用方的原因
func InvalidInput(reason string) error {
	return &inputError{reason: reason}
}

type inputError struct {
	reason string
}

func (e *inputError) Error() string { return e.reason }

func (e *inputError) Is(target error) bool { return target == ErrInvalidInput }
