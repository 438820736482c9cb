package repo

import (
	"fmt"

	"emperror.dev/errors"
)

// ErrorCode identifies the kind of a failure while talking to GitHub
type ErrorCode string

const (
	CodeUserNotFound      ErrorCode = "USER_NOT_FOUND"
	CodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeFetchFailed       ErrorCode = "FETCH_FAILED"
	CodeProcessingFailed  ErrorCode = "PROCESSING_FAILED"
)

// Domain errors

type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Predefined domain errors

func ErrUserNotFound() *DomainError {
	return &DomainError{
		Code:    CodeUserNotFound,
		Message: "User not found",
	}
}

func ErrRateLimitExceeded() *DomainError {
	return &DomainError{
		Code:    CodeRateLimitExceeded,
		Message: "API rate limit exceeded",
	}
}

func ErrFetchFailed() *DomainError {
	return &DomainError{
		Code:    CodeFetchFailed,
		Message: "Unable to fetch data from the GitHub API",
	}
}

func ErrProcessingFailed(message string, err error) *DomainError {
	return &DomainError{
		Code:    CodeProcessingFailed,
		Message: message,
		Err:     err,
	}
}

// AsDomainError returns the DomainError in err's chain, if any.
func AsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}
