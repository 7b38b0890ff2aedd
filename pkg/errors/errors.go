package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeAuth represents portal login failures
	ErrorTypeAuth ErrorType = "auth"
	// ErrorTypeNetwork represents network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeUpstream represents unexpected upstream status codes
	ErrorTypeUpstream ErrorType = "upstream"
	// ErrorTypeParsing represents HTML/JSON parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// PortalError represents an error raised while talking to the order portal
type PortalError struct {
	Type    ErrorType
	Op      string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *PortalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Op, e.Message)
}

// Unwrap returns the underlying error
func (e *PortalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether the error aborts the whole pipeline request.
// Only authentication failures do; everything else degrades to partial data.
func (e *PortalError) IsFatal() bool {
	return e.Type == ErrorTypeAuth
}

// New creates a new PortalError
func New(errType ErrorType, op, message string, err error) *PortalError {
	return &PortalError{
		Type:    errType,
		Op:      op,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewAuth creates a new auth error
func NewAuth(op, message string, err error) *PortalError {
	return New(ErrorTypeAuth, op, message, err)
}

// NewNetwork creates a new network error
func NewNetwork(op, message string, err error) *PortalError {
	return New(ErrorTypeNetwork, op, message, err)
}

// NewUpstream creates a new upstream status error
func NewUpstream(op string, statusCode int) *PortalError {
	message := fmt.Sprintf("unexpected status code %d", statusCode)
	return New(ErrorTypeUpstream, op, message, nil)
}

// NewParsing creates a new parsing error
func NewParsing(op, message string, err error) *PortalError {
	return New(ErrorTypeParsing, op, message, err)
}

// NewCache creates a new cache error
func NewCache(op, message string, err error) *PortalError {
	return New(ErrorTypeCache, op, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *PortalError {
	return New(ErrorTypeConfiguration, "", message, err)
}
