// Package mustache provides custom error types for better error handling and reporting.
package mustache

import (
	"fmt"
)

// ParseError represents an error in the template source
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
	} else if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// NewParseError creates a new parse error with position information
func NewParseError(message string, line, column int) error {
	return &ParseError{
		Message: message,
		Line:    line,
		Column:  column,
	}
}

// RenderError represents an error during template rendering
type RenderError struct {
	Op    string
	Cause error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error during %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("render error during %s", e.Op)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a new render error
func NewRenderError(op string, cause error) error {
	return &RenderError{
		Op:    op,
		Cause: cause,
	}
}

// ConversionError represents a failure to convert host data into a Value
type ConversionError struct {
	Value   interface{}
	Message string
}

func (e *ConversionError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("conversion error for %T: %s", e.Value, e.Message)
	}
	return fmt.Sprintf("conversion error: %s", e.Message)
}

// NewConversionError creates a new conversion error
func NewConversionError(value interface{}, message string) error {
	return &ConversionError{
		Value:   value,
		Message: message,
	}
}

// EncodingError indicates that rendered output is not valid UTF-8 when a
// string result was requested
type EncodingError struct {
	Message string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding error: %s", e.Message)
}

// NewEncodingError creates a new encoding error
func NewEncodingError(message string) error {
	return &EncodingError{Message: message}
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	_, ok := err.(*ParseError)
	return ok
}

// IsRenderError checks if an error is a render error
func IsRenderError(err error) bool {
	_, ok := err.(*RenderError)
	return ok
}

// IsConversionError checks if an error is a conversion error
func IsConversionError(err error) bool {
	_, ok := err.(*ConversionError)
	return ok
}

// IsEncodingError checks if an error is an encoding error
func IsEncodingError(err error) bool {
	_, ok := err.(*EncodingError)
	return ok
}
