// Package errors provides custom error types for foodsync.
// They separate configuration failures, which abort a run, from
// connectivity failures, which degrade to an empty platform snapshot.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates missing or malformed configuration
	ErrConfiguration = errors.New("configuration error")

	// ErrCredentialsRequired indicates that platform credentials are not configured
	ErrCredentialsRequired = errors.New("credentials required")

	// ErrCredentialsInvalid indicates that the platform rejected the credentials
	ErrCredentialsInvalid = errors.New("credentials invalid")

	// ErrPlatformUnavailable indicates that the ordering platform could not be reached
	ErrPlatformUnavailable = errors.New("platform unavailable")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents an error response from the ordering platform
type APIError struct {
	Platform   string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Platform, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Platform, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support. Every API error counts as the platform
// being unavailable except explicit credential rejections.
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 401 || e.StatusCode == 403 {
		return target == ErrCredentialsInvalid
	}
	return target == ErrPlatformUnavailable
}

// NewAPIError creates a new APIError
func NewAPIError(platform string, statusCode int, message string) *APIError {
	return &APIError{
		Platform:   platform,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// AuthenticationError represents a failed or impossible platform login
type AuthenticationError struct {
	Platform string
	User     string
	Message  string
	Err      error
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	if e.User != "" {
		return fmt.Sprintf("authentication error for %s as %s: %s", e.Platform, e.User, e.Message)
	}
	return fmt.Sprintf("authentication error for %s: %s", e.Platform, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AuthenticationError) Is(target error) bool {
	if e.User == "" {
		return target == ErrCredentialsRequired
	}
	return target == ErrCredentialsInvalid
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(platform, user, message string, err error) *AuthenticationError {
	return &AuthenticationError{
		Platform: platform,
		User:     user,
		Message:  message,
		Err:      err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "csv", "json", "yaml"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s parse error at line %d: %s", e.Format, e.Line, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "rename", "list"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation or parse error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsConnectivityError checks if an error means the platform snapshot could
// not be fetched. Such errors degrade the run instead of failing it.
func IsConnectivityError(err error) bool {
	return errors.Is(err, ErrPlatformUnavailable) ||
		errors.Is(err, ErrCredentialsRequired) ||
		errors.Is(err, ErrCredentialsInvalid)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapAPI wraps an error as an APIError
func WrapAPI(platform string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Platform:   platform,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}
