package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-searcher/internal/application/dto"
	"github-searcher/internal/config"
	"github-searcher/internal/container"
)

// upstream is a stubbed GitHub API that records every requested path
type upstream struct {
	mu     sync.Mutex
	routes map[string]func(w http.ResponseWriter)
	paths  []string
}

func newUpstream(t *testing.T) (*upstream, *httptest.Server) {
	t.Helper()
	u := &upstream{routes: make(map[string]func(w http.ResponseWriter))}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.paths = append(u.paths, r.URL.Path)
		route, ok := u.routes[r.URL.Path]
		u.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		route(w)
	}))
	t.Cleanup(srv.Close)
	return u, srv
}

func (u *upstream) json(path string, status int, body string) {
	u.routes[path] = func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (u *upstream) requested() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.paths...)
}

func newTestRouter(t *testing.T, upstreamURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0", ReadTimeout: 5, WriteTimeout: 5, IdleTimeout: 5},
		GitHub: config.GitHubConfig{
			UsersAPIURL:       upstreamURL + "/users/",
			ReposAPIURL:       upstreamURL + "/repos/",
			HTTPTimeout:       5,
			FanoutConcurrency: 1,
		},
		Log:  config.LogConfig{Level: "error", Format: "text"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	require.NoError(t, cfg.Validate())

	c, err := container.New(cfg)
	require.NoError(t, err)

	var router *gin.Engine
	require.NoError(t, c.Invoke(func(r *gin.Engine) { router = r }))
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestSearch_ReturnsNonForkedRepositoriesWithBranches(t *testing.T) {
	u, srv := newUpstream(t)
	u.json("/users/octocat/repos", http.StatusOK,
		`[{"name":"repo1","owner":{"login":"octocat"},"fork":false},{"name":"repo2","owner":{"login":"octocat"},"fork":true}]`)
	u.json("/repos/octocat/repo1/branches", http.StatusOK,
		`[{"name":"main","commit":{"sha":"123abcd"}},{"name":"feature","commit":{"sha":"456def"}}]`)

	w := get(newTestRouter(t, srv.URL), "/github/search/octocat")

	require.Equal(t, http.StatusOK, w.Code)

	var result []dto.RepositoryDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, []dto.RepositoryDetailResponse{
		{
			RepositoryName: "repo1",
			OwnerLogin:     "octocat",
			Branches: []dto.BranchDetailResponse{
				{Name: "main", CommitSHA: "123abcd"},
				{Name: "feature", CommitSHA: "456def"},
			},
		},
	}, result)
	assert.Equal(t, []string{"/users/octocat/repos", "/repos/octocat/repo1/branches"}, u.requested())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSearch_OnlyForkedRepositories(t *testing.T) {
	u, srv := newUpstream(t)
	u.json("/users/octocat/repos", http.StatusOK, `[{"name":"repo1","owner":{"login":"octocat"},"fork":true}]`)

	w := get(newTestRouter(t, srv.URL), "/github/search/octocat")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.Equal(t, []string{"/users/octocat/repos"}, u.requested())
}

func TestSearch_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantStatus int
		wantMsg    string
	}{
		{"fetch failed", http.StatusInternalServerError, http.StatusInternalServerError, "Unable to fetch data from the GitHub API"},
		{"user not found", http.StatusNotFound, http.StatusNotFound, "User not found"},
		{"rate limit exceeded", http.StatusForbidden, http.StatusForbidden, "API rate limit exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, srv := newUpstream(t)
			u.json("/users/octocat/repos", tt.status, `{"message":"upstream"}`)

			w := get(newTestRouter(t, srv.URL), "/github/search/octocat")

			require.Equal(t, tt.wantStatus, w.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestSearch_BranchFailureAbortsWholeRequest(t *testing.T) {
	u, srv := newUpstream(t)
	u.json("/users/octocat/repos", http.StatusOK,
		`[{"name":"repo1","owner":{"login":"octocat"},"fork":false},
		  {"name":"repo2","owner":{"login":"octocat"},"fork":false},
		  {"name":"repo3","owner":{"login":"octocat"},"fork":false}]`)
	u.json("/repos/octocat/repo1/branches", http.StatusOK, `[{"name":"main","commit":{"sha":"aaa"}}]`)
	u.json("/repos/octocat/repo2/branches", http.StatusForbidden, `{"message":"API rate limit exceeded"}`)
	u.json("/repos/octocat/repo3/branches", http.StatusOK, `[]`)

	w := get(newTestRouter(t, srv.URL), "/github/search/octocat")

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"status":403,"message":"API rate limit exceeded"}`, w.Body.String())
	assert.NotContains(t, u.requested(), "/repos/octocat/repo3/branches")
}

func TestSearch_MissingRepositoryCollapsesToUserNotFound(t *testing.T) {
	u, srv := newUpstream(t)
	u.json("/users/octocat/repos", http.StatusOK, `[{"name":"gone","owner":{"login":"octocat"},"fork":false}]`)

	w := get(newTestRouter(t, srv.URL), "/github/search/octocat")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":404,"message":"User not found"}`, w.Body.String())
}

func TestSearch_MalformedUpstreamBody(t *testing.T) {
	u, srv := newUpstream(t)
	u.json("/users/octocat/repos", http.StatusOK, `[{"name":`)

	w := get(newTestRouter(t, srv.URL), "/github/search/octocat")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":500,"message":"Failed to process repositories information"}`, w.Body.String())
}

func TestHealthRoute(t *testing.T) {
	_, srv := newUpstream(t)

	w := get(newTestRouter(t, srv.URL), "/health")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestCORSPreflight(t *testing.T) {
	_, srv := newUpstream(t)
	router := newTestRouter(t, srv.URL)

	req := httptest.NewRequest(http.MethodOptions, "/github/search/octocat", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
