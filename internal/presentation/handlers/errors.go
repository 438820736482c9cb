package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github-searcher/internal/application/dto"
	"github-searcher/internal/domain/repo"
)

// StatusForError maps a failure to the HTTP status and message returned to the caller
func StatusForError(err error) (int, string) {
	domainErr, ok := repo.AsDomainError(err)
	if !ok {
		return http.StatusInternalServerError, "Internal server error"
	}

	switch domainErr.Code {
	case repo.CodeUserNotFound:
		return http.StatusNotFound, domainErr.Message
	case repo.CodeRateLimitExceeded:
		return http.StatusForbidden, domainErr.Message
	case repo.CodeFetchFailed, repo.CodeProcessingFailed:
		return http.StatusInternalServerError, domainErr.Message
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// NewErrorResponse builds the JSON error body for a failure
func NewErrorResponse(err error) dto.ErrorResponse {
	status, message := StatusForError(err)
	return dto.ErrorResponse{
		Status:  status,
		Message: message,
	}
}

func abortWithError(c *gin.Context, err error) {
	response := NewErrorResponse(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(response.Status, response)
}
