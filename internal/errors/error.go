package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryHook   Category = "hook"
	CategoryHost   Category = "host"
	CategoryRender Category = "render"
	CategoryScene  Category = "scene"
	CategoryConfig Category = "config"
	CategoryCLI    Category = "cli"
)

// FiberError is a structured error with a code, explanation and optional
// suggestion.
type FiberError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (hook, host, render, ...).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Component names the component being rendered when the error occurred.
	Component string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *FiberError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Component != "" {
		msg += " (in " + e.Component + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *FiberError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *FiberError) WithSuggestion(s string) *FiberError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *FiberError) WithDetail(d string) *FiberError {
	e.Detail = d
	return e
}

// WithComponent records the component that was rendering.
func (e *FiberError) WithComponent(name string) *FiberError {
	e.Component = name
	return e
}

// Wrap wraps another error.
func (e *FiberError) Wrap(err error) *FiberError {
	e.Wrapped = err
	return e
}

// New creates a FiberError from a registered error code.
func New(code string) *FiberError {
	template, ok := registry[code]
	if !ok {
		return &FiberError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &FiberError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new FiberError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *FiberError {
	return &FiberError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a FiberError.
// An error that already is a *FiberError is returned unchanged.
func FromError(err error, code string) *FiberError {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*FiberError); ok {
		return fe
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err is, or wraps, a FiberError with the given code.
func HasCode(err error, code string) bool {
	for err != nil {
		if fe, ok := err.(*FiberError); ok && fe.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
