// Package config loads credentials and client settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/naka-gawa/repo-analyzer/internal/domain"
)

const (
	// LoginEnv and TokenEnv name the variables holding the basic auth pair.
	LoginEnv = "GITHUB_LOGIN"
	TokenEnv = "GITHUB_TOKEN"

	// DefaultBaseURL is the public GitHub REST API.
	DefaultBaseURL = "https://api.github.com/"
	// DefaultTimeout applies to each API request.
	DefaultTimeout = 30 * time.Second
	// DefaultPageSize is also the largest page size the API accepts.
	DefaultPageSize = 100
	// DefaultMaxPages bounds a single paged fetch.
	DefaultMaxPages = 1000
)

// Config holds everything the repository client needs besides the repository itself.
type Config struct {
	Login    string
	Token    string
	BaseURL  string
	Timeout  time.Duration
	PageSize int
	MaxPages int
}

// Default returns a Config without credentials.
func Default() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout,
		PageSize: DefaultPageSize,
		MaxPages: DefaultMaxPages,
	}
}

// Load reads the credentials through getenv. If envFile is set, its values fill
// in whatever getenv leaves empty; the process environment is not modified. A
// missing envFile is ignored.
func Load(envFile string, getenv func(string) string) (Config, error) {
	fileEnv := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileEnv = values
		case !errors.Is(err, fs.ErrNotExist):
			return Config{}, fmt.Errorf("%w: failed to read %s: %v", domain.ErrConfiguration, envFile, err)
		}
	}
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fileEnv[key]
	}

	cfg := Default()
	cfg.Login = lookup(LoginEnv)
	cfg.Token = lookup(TokenEnv)
	if cfg.Login == "" || cfg.Token == "" {
		return Config{}, fmt.Errorf("%w: bad credentials, set %s and %s", domain.ErrConfiguration, LoginEnv, TokenEnv)
	}
	return cfg, nil
}
