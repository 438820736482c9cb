package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github-searcher/internal/domain/repo"
)

// SearchService handles the repository search use case
type SearchService struct {
	githubService     repo.GitHubService
	fanoutConcurrency int
}

// NewSearchService creates a new search service.
// fanoutConcurrency bounds the number of branch fetches in flight; 1 fetches
// branches strictly one repository after another.
func NewSearchService(githubService repo.GitHubService, fanoutConcurrency int) *SearchService {
	if fanoutConcurrency < 1 {
		fanoutConcurrency = 1
	}
	return &SearchService{
		githubService:     githubService,
		fanoutConcurrency: fanoutConcurrency,
	}
}

// ListNonForkedRepositories returns every non-forked repository of a user
// with all of its branches. Any upstream failure aborts the whole search and
// is returned unchanged.
func (s *SearchService) ListNonForkedRepositories(ctx context.Context, username string) ([]repo.RepositoryDetail, error) {
	repositories, err := s.githubService.ListRepositories(ctx, username)
	if err != nil {
		return nil, err
	}

	sources := repo.NonForked(repositories)
	logrus.WithFields(logrus.Fields{
		"username":    username,
		"total":       len(repositories),
		"non_forked":  len(sources),
		"concurrency": s.fanoutConcurrency,
	}).Debug("Fetching branches for non-forked repositories")

	if len(sources) == 0 {
		return []repo.RepositoryDetail{}, nil
	}

	// Results are stored by index so output order follows the filtered list
	// regardless of completion order.
	details := make([]repo.RepositoryDetail, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanoutConcurrency)

	for i, source := range sources {
		g.Go(func() error {
			// every index reports cancellation so Wait never succeeds with gaps
			if err := gctx.Err(); err != nil {
				return err
			}

			detail, err := s.buildRepositoryDetail(gctx, source)
			if err != nil {
				return err
			}
			details[i] = detail
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return details, nil
}

func (s *SearchService) buildRepositoryDetail(ctx context.Context, source repo.RepositorySummary) (repo.RepositoryDetail, error) {
	branches, err := s.githubService.ListBranches(ctx, source.Name, source.OwnerLogin)
	if err != nil {
		return repo.RepositoryDetail{}, err
	}

	return repo.NewRepositoryDetail(source, repo.NewBranchDetails(branches))
}
