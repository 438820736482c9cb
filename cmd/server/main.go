package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emperror.dev/errors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/dig"

	"github-searcher/internal/application/dto"
	"github-searcher/internal/application/service"
	"github-searcher/internal/config"
	"github-searcher/internal/container"
	"github-searcher/internal/presentation/handlers"
)

// @title GitHub Searcher API
// @version 1.0
// @description Lists the non-forked repositories of a GitHub user together with their branches

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "github-searcher",
		Short:         "Lists non-forked GitHub repositories of a user with their branches",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search <username>",
		Short: "Print the non-forked repositories of a user as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0])
		},
	})

	return cmd
}

func buildContainer() (*dig.Container, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}

	c, err := container.New(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build dependency container")
	}

	// Configure logging before anything else runs
	if err := c.Invoke(func(*logrus.Logger) {}); err != nil {
		return nil, errors.Wrap(err, "failed to configure logger")
	}
	return c, nil
}

func runServer() error {
	// Set Gin mode
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	c, err := buildContainer()
	if err != nil {
		return err
	}

	var server *http.Server
	if err := c.Invoke(func(s *http.Server) { server = s }); err != nil {
		return errors.Wrap(err, "failed to initialize server")
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		logrus.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return errors.Wrap(err, "failed to start server")
	case <-quit:
	}
	logrus.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}

	logrus.Info("Server exited")
	return nil
}

func runSearch(cmd *cobra.Command, username string) error {
	c, err := buildContainer()
	if err != nil {
		return err
	}

	var searchService *service.SearchService
	if err := c.Invoke(func(s *service.SearchService) { searchService = s }); err != nil {
		return errors.Wrap(err, "failed to initialize search service")
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")

	details, err := searchService.ListNonForkedRepositories(cmd.Context(), username)
	if err != nil {
		if encodeErr := encoder.Encode(handlers.NewErrorResponse(err)); encodeErr != nil {
			return encodeErr
		}
		return err
	}

	return encoder.Encode(dto.NewRepositoryDetailResponses(details))
}
