package repo

import (
	"context"
)

// GitHubService is a domain service interface for interacting with GitHub
// Implementation will be in infrastructure layer
type GitHubService interface {
	// ListRepositories lists the public repositories of a user.
	// Failures are returned as *DomainError.
	ListRepositories(ctx context.Context, username string) ([]RepositorySummary, error)

	// ListBranches lists the branches of a repository owned by ownerLogin.
	// Failures are returned as *DomainError.
	ListBranches(ctx context.Context, repositoryName, ownerLogin string) ([]BranchSummary, error)
}
