package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github-searcher/internal/application/dto"
	"github-searcher/internal/application/service"
)

// SearchHandler handles GitHub repository search requests
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// Search handles GET /github/search/:username
// @Summary List non-forked repositories of a GitHub user
// @Description Returns every non-forked repository of the user with the name and latest commit SHA of each branch
// @Tags Search
// @Produce json
// @Param username path string true "GitHub username"
// @Success 200 {array} dto.RepositoryDetailResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /github/search/{username} [get]
func (h *SearchHandler) Search(c *gin.Context) {
	username := c.Param("username")

	details, err := h.searchService.ListNonForkedRepositories(c.Request.Context(), username)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRepositoryDetailResponses(details))
}
