package errors

import (
	"errors"
	"fmt"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/errors/ecode"
)

// 带错误码的错误，边界层通过 DecodeErr 还原为响应码和提示信息
type CodedError struct {
	Code    int
	Message string
	Err     error // 原始错误，可为空
}

func (e *CodedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("code=%d message=%s cause=%v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("code=%d message=%s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// New 创建一个带错误码的错误，message为空时使用错误码默认提示
func New(code int, message string) error {
	if message == "" {
		message = ecode.Text(code)
	}
	return &CodedError{Code: code, Message: message}
}

// Newf 创建一个带错误码的错误，提示信息使用格式化字符串
func Newf(code int, format string, args ...interface{}) error {
	return &CodedError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap 给原始错误附加错误码和提示信息
func Wrap(err error, code int, message string) error {
	if err == nil {
		return nil
	}
	if message == "" {
		message = ecode.Text(code)
	}
	return &CodedError{Code: code, Message: message, Err: err}
}

// Code 提取错误码，nil返回Success，未知错误返回ErrInternal
func Code(err error) int {
	if err == nil {
		return ecode.Success
	}
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ecode.ErrInternal
}

// DecodeErr 把错误还原为（错误码，提示信息），供响应层使用
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, ecode.Text(ecode.Success)
	}
	var ce *CodedError
	if errors.As(err, &ce) {
		if ce.Err != nil {
			return ce.Code, fmt.Sprintf("%s: %v", ce.Message, ce.Err)
		}
		return ce.Code, ce.Message
	}
	return ecode.ErrInternal, err.Error()
}

// Is 透传标准库判断
func Is(err, target error) bool {
	return errors.Is(err, target)
}
