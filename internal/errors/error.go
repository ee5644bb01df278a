package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
	CategoryAPI     Category = "api"
	CategoryPublish Category = "publish"
	CategoryServer  Category = "server"
)

// MarqueeError is a structured error with a code, suggestion and cause.
type MarqueeError struct {
	// Code is a unique error identifier (e.g., "M101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *MarqueeError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *MarqueeError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *MarqueeError) WithSuggestion(s string) *MarqueeError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detailed explanation.
func (e *MarqueeError) WithDetail(d string) *MarqueeError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *MarqueeError) Wrap(err error) *MarqueeError {
	e.Wrapped = err
	return e
}

// New creates a MarqueeError from a registered error code.
func New(code string) *MarqueeError {
	template, ok := registry[code]
	if !ok {
		return &MarqueeError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &MarqueeError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a MarqueeError with a formatted message and no code.
func Newf(category Category, format string, args ...any) *MarqueeError {
	return &MarqueeError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps err under code unless it already is a MarqueeError.
func FromError(err error, code string) *MarqueeError {
	if err == nil {
		return nil
	}
	var me *MarqueeError
	if stderrors.As(err, &me) {
		return me
	}
	return New(code).Wrap(err)
}
