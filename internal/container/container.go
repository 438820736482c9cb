package container

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/dig"

	"github-searcher/internal/application/service"
	"github-searcher/internal/config"
	"github-searcher/internal/domain/repo"
	"github-searcher/internal/github"
	infraGitHub "github-searcher/internal/infrastructure/github"
	"github-searcher/internal/presentation/handlers"
	"github-searcher/internal/server"
)

// RegisterProviders registers all application providers with the DIG container.
func RegisterProviders(container *dig.Container, cfg *config.Config) error {
	// Register all layers (bottom-up: config -> infrastructure -> application -> presentation)
	providers := []any{
		func() *config.Config { return cfg },
		newLogger,

		// Infrastructure
		newGitHubClient,
		infraGitHub.NewGitHubService,

		// Application
		newSearchService,

		// Presentation
		handlers.NewHealthHandler,
		handlers.NewSearchHandler,
		server.NewRouter,
		server.NewHTTPServer,
	}

	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return err
		}
	}

	return nil
}

// New creates a container with every provider registered
func New(cfg *config.Config) (*dig.Container, error) {
	container := dig.New()
	if err := RegisterProviders(container, cfg); err != nil {
		return nil, err
	}
	return container, nil
}

func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	if err := cfg.Log.ConfigureLogger(); err != nil {
		return nil, err
	}
	return logrus.StandardLogger(), nil
}

func newGitHubClient(cfg *config.Config) *github.Client {
	httpClient := github.NewHTTPClient(cfg.GitHub.GetHTTPTimeout())
	return github.NewClient(httpClient, cfg.GitHub.UsersAPIURL, cfg.GitHub.ReposAPIURL, cfg.GitHub.UserAgent)
}

func newSearchService(cfg *config.Config, githubService repo.GitHubService) *service.SearchService {
	return service.NewSearchService(githubService, cfg.GitHub.FanoutConcurrency)
}
