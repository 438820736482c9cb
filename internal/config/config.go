package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	GitHub GitHubConfig
	Log    LogConfig
	CORS   CORSConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

// GitHubConfig holds the upstream GitHub API configuration
type GitHubConfig struct {
	UsersAPIURL       string
	ReposAPIURL       string
	HTTPTimeout       int
	FanoutConcurrency int
	UserAgent         string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// .env file is optional, so we don't return error if it doesn't exist
		logrus.Debug("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 120),
		},
		GitHub: GitHubConfig{
			UsersAPIURL:       getEnv("GITHUB_USERS_API_URL", "https://api.github.com/users/"),
			ReposAPIURL:       getEnv("GITHUB_REPOS_API_URL", "https://api.github.com/repos/"),
			HTTPTimeout:       getEnvAsInt("GITHUB_HTTP_TIMEOUT", 30),
			FanoutConcurrency: getEnvAsInt("GITHUB_FANOUT_CONCURRENCY", 1),
			UserAgent:         getEnv("GITHUB_USER_AGENT", "github-searcher"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", ",", []string{"*"}),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validateBaseURL("GITHUB_USERS_API_URL", c.GitHub.UsersAPIURL); err != nil {
		return err
	}
	if err := validateBaseURL("GITHUB_REPOS_API_URL", c.GitHub.ReposAPIURL); err != nil {
		return err
	}
	if c.GitHub.HTTPTimeout < 1 {
		return fmt.Errorf("GITHUB_HTTP_TIMEOUT must be at least 1 second")
	}
	if c.GitHub.FanoutConcurrency < 1 {
		return fmt.Errorf("GITHUB_FANOUT_CONCURRENCY must be at least 1")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("LOG_FORMAT must be either text or json")
	}
	return nil
}

// GetServerAddress returns the server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// GetHTTPTimeout returns the upstream HTTP client timeout
func (c *GitHubConfig) GetHTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// ConfigureLogger applies the log level and format to the standard logrus logger
func (c *LogConfig) ConfigureLogger() error {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(level)

	if c.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func validateBaseURL(key, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", key, err)
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%s must be an absolute http(s) URL", key)
	}
	return nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as integer with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getEnvAsSlice gets an environment variable as slice with a fallback value
func getEnvAsSlice(key, separator string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, separator)
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				result = append(result, p)
			}
		}
		return result
	}
	return fallback
}
