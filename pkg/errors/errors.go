package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeFetch represents network/render fetch errors
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeParse represents HTML parsing errors
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeNotify represents notification delivery errors
	ErrorTypeNotify ErrorType = "notify"
	// ErrorTypePersistence represents ledger/config store errors
	ErrorTypePersistence ErrorType = "persistence"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// WatchError represents an error scoped to one watch unit (subscriber/configuration)
type WatchError struct {
	Type    ErrorType
	Subject string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *WatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Subject, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Subject, e.Message)
}

// Unwrap returns the underlying error
func (e *WatchError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is worth retrying on a later cycle
func (e *WatchError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeFetch, ErrorTypeNotify, ErrorTypePersistence:
		return true
	case ErrorTypeRateLimit:
		return false
	case ErrorTypeParse:
		return false
	default:
		return false
	}
}

// New creates a new WatchError
func New(errType ErrorType, subject, message string, err error) *WatchError {
	return &WatchError{
		Type:    errType,
		Subject: subject,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewFetch creates a new fetch error
func NewFetch(subject, message string, err error) *WatchError {
	return New(ErrorTypeFetch, subject, message, err)
}

// NewParse creates a new parse error
func NewParse(subject, message string, err error) *WatchError {
	return New(ErrorTypeParse, subject, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(subject string, duration time.Duration) *WatchError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, subject, message, nil)
}

// NewNotify creates a new notification error
func NewNotify(subject, message string, err error) *WatchError {
	return New(ErrorTypeNotify, subject, message, err)
}

// NewPersistence creates a new persistence error
func NewPersistence(subject, message string, err error) *WatchError {
	return New(ErrorTypePersistence, subject, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *WatchError {
	return New(ErrorTypeConfiguration, "", message, err)
}
