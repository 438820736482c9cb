package github

import (
	"context"
	"net/http"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"

	"github-searcher/internal/domain/repo"
	"github-searcher/internal/github"
)

const (
	repositoriesProcessingMessage = "Failed to process repositories information"
	branchesProcessingMessage     = "Failed to process branches information"
)

// GitHubServiceImpl implements the domain repo.GitHubService interface
type GitHubServiceImpl struct {
	client *github.Client
}

// NewGitHubService creates a new GitHub service implementation
func NewGitHubService(client *github.Client) repo.GitHubService {
	return &GitHubServiceImpl{client: client}
}

// ListRepositories fetches all repositories of a user from GitHub
func (g *GitHubServiceImpl) ListRepositories(ctx context.Context, username string) ([]repo.RepositorySummary, error) {
	githubRepos, err := g.client.ListUserRepositories(ctx, username)
	if err != nil {
		logrus.WithField("username", username).WithError(err).Error("Failed to fetch repositories")
		return nil, classify(err, repositoriesProcessingMessage)
	}

	// Convert to domain repository summaries
	summaries := make([]repo.RepositorySummary, len(githubRepos))
	for i, ghRepo := range githubRepos {
		summaries[i] = repo.RepositorySummary{
			Name:       ghRepo.Name,
			IsFork:     ghRepo.Fork,
			OwnerLogin: ghRepo.Owner.Login,
		}
	}

	return summaries, nil
}

// ListBranches fetches all branches of a repository from GitHub
func (g *GitHubServiceImpl) ListBranches(ctx context.Context, repositoryName, ownerLogin string) ([]repo.BranchSummary, error) {
	githubBranches, err := g.client.ListRepositoryBranches(ctx, repositoryName, ownerLogin)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"repository": repositoryName,
			"owner":      ownerLogin,
		}).WithError(err).Error("Failed to fetch branches")
		return nil, classify(err, branchesProcessingMessage)
	}

	summaries := make([]repo.BranchSummary, len(githubBranches))
	for i, ghBranch := range githubBranches {
		summaries[i] = repo.BranchSummary{
			Name:      ghBranch.Name,
			CommitSHA: ghBranch.Commit.SHA,
		}
	}

	return summaries, nil
}

// classify maps a client failure onto the domain error taxonomy.
// A 404 means "user not found" whether the user or the repository is missing.
func classify(err error, processingMessage string) *repo.DomainError {
	var statusErr *github.StatusError
	if !errors.As(err, &statusErr) {
		return repo.ErrProcessingFailed(processingMessage, err)
	}

	switch statusErr.StatusCode {
	case http.StatusNotFound:
		return repo.ErrUserNotFound()
	case http.StatusForbidden:
		return repo.ErrRateLimitExceeded()
	default:
		return repo.ErrFetchFailed()
	}
}
