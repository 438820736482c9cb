package dto

import "github-searcher/internal/domain/repo"

// RepositoryDetailResponse represents a non-forked repository in API responses
type RepositoryDetailResponse struct {
	RepositoryName string                 `json:"repositoryName"`
	OwnerLogin     string                 `json:"ownerLogin"`
	Branches       []BranchDetailResponse `json:"branches"`
}

// BranchDetailResponse represents a branch and its latest commit in API responses
type BranchDetailResponse struct {
	Name      string `json:"name"`
	CommitSHA string `json:"commitSha"`
}

// ErrorResponse represents an error returned by the API
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// NewRepositoryDetailResponses converts domain repository details to DTOs.
// The result is never nil so that it always serializes as a JSON array.
func NewRepositoryDetailResponses(details []repo.RepositoryDetail) []RepositoryDetailResponse {
	responses := make([]RepositoryDetailResponse, len(details))
	for i, d := range details {
		branches := make([]BranchDetailResponse, len(d.Branches))
		for j, b := range d.Branches {
			branches[j] = BranchDetailResponse{
				Name:      b.Name,
				CommitSHA: b.CommitSHA,
			}
		}
		responses[i] = RepositoryDetailResponse{
			RepositoryName: d.RepositoryName,
			OwnerLogin:     d.OwnerLogin,
			Branches:       branches,
		}
	}
	return responses
}
