package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/sirupsen/logrus"
)

const defaultUserAgent = "github-searcher"

// Client handles GitHub API interactions
type Client struct {
	httpClient   *http.Client
	usersBaseURL string
	reposBaseURL string
	userAgent    string
}

// NewHTTPClient creates the pooled HTTP client used for GitHub API calls
func NewHTTPClient(timeout time.Duration) *http.Client {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = timeout
	return httpClient
}

// NewClient creates a new GitHub API client.
// usersBaseURL and reposBaseURL are prefixes such as "https://api.github.com/users/";
// a trailing slash is added when missing.
func NewClient(httpClient *http.Client, usersBaseURL, reposBaseURL, userAgent string) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(30 * time.Second)
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		httpClient:   httpClient,
		usersBaseURL: withTrailingSlash(usersBaseURL),
		reposBaseURL: withTrailingSlash(reposBaseURL),
		userAgent:    userAgent,
	}
}

// Repository represents a GitHub repository from the API
type Repository struct {
	Name  string `json:"name"`
	Fork  bool   `json:"fork"`
	Owner Owner  `json:"owner"`
}

// Owner represents the owner of a GitHub repository
type Owner struct {
	Login string `json:"login"`
}

// Branch represents a GitHub branch from the API
type Branch struct {
	Name   string `json:"name"`
	Commit Commit `json:"commit"`
}

// Commit represents the head commit of a branch
type Commit struct {
	SHA string `json:"sha"`
}

// StatusError is returned when GitHub answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github API returned status %d for %s", e.StatusCode, e.URL)
}

// ListUserRepositories fetches the public repositories of a user
func (c *Client) ListUserRepositories(ctx context.Context, username string) ([]Repository, error) {
	endpoint := c.usersBaseURL + url.PathEscape(username) + "/repos"

	var repos []Repository
	if err := c.get(ctx, endpoint, &repos); err != nil {
		return nil, err
	}
	if repos == nil {
		repos = []Repository{}
	}
	return repos, nil
}

// ListRepositoryBranches fetches the branches of a repository
func (c *Client) ListRepositoryBranches(ctx context.Context, repositoryName, ownerLogin string) ([]Branch, error) {
	endpoint := c.reposBaseURL + url.PathEscape(ownerLogin) + "/" + url.PathEscape(repositoryName) + "/branches"

	var branches []Branch
	if err := c.get(ctx, endpoint, &branches); err != nil {
		return nil, err
	}
	if branches == nil {
		branches = []Branch{}
	}
	return branches, nil
}

func (c *Client) get(ctx context.Context, endpoint string, target any) (reterr error) {
	log := logrus.WithField("url", endpoint)
	log.Debug("executing GitHub API request...")
	startTime := time.Now()
	defer func() {
		log := log.WithField("elapsed", time.Since(startTime))
		if reterr != nil {
			log.WithError(reterr).Debug("GitHub API request failed")
		} else {
			log.Debug("GitHub API request succeeded")
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to fetch %s", endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the pooled connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        endpoint,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.Wrapf(err, "failed to decode response from %s", endpoint)
	}

	return nil
}

func withTrailingSlash(base string) string {
	if strings.HasSuffix(base, "/") {
		return base
	}
	return base + "/"
}
