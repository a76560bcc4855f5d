package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/naka-gawa/repo-analyzer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEnv(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoad(t *testing.T) {
	testCases := []struct {
		name        string
		env         map[string]string
		expectError bool
	}{
		{
			name: "happy path - both credentials present",
			env:  map[string]string{LoginEnv: "octocat", TokenEnv: "secret"},
		},
		{
			name:        "error case - login missing",
			env:         map[string]string{TokenEnv: "secret"},
			expectError: true,
		},
		{
			name:        "error case - token missing",
			env:         map[string]string{LoginEnv: "octocat"},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load("", fakeEnv(tc.env))
			if tc.expectError {
				assert.ErrorIs(t, err, domain.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "octocat", cfg.Login)
			assert.Equal(t, "secret", cfg.Token)
			assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
			assert.Equal(t, DefaultPageSize, cfg.PageSize)
			assert.Equal(t, DefaultMaxPages, cfg.MaxPages)
			assert.Equal(t, DefaultTimeout, cfg.Timeout)
		})
	}
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.env")
	_, err := Load(missing, fakeEnv(map[string]string{LoginEnv: "a", TokenEnv: "b"}))
	assert.NoError(t, err)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GITHUB_LOGIN=from-file\nGITHUB_TOKEN=file-token\n"), 0o600))

	testCases := []struct {
		name          string
		env           map[string]string
		expectedLogin string
		expectedToken string
	}{
		{
			name:          "file fills in an empty environment",
			env:           map[string]string{},
			expectedLogin: "from-file",
			expectedToken: "file-token",
		},
		{
			name:          "environment wins over the file",
			env:           map[string]string{LoginEnv: "from-env"},
			expectedLogin: "from-env",
			expectedToken: "file-token",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(path, fakeEnv(tc.env))
			require.NoError(t, err)
			assert.Equal(t, tc.expectedLogin, cfg.Login)
			assert.Equal(t, tc.expectedToken, cfg.Token)
		})
	}
}

func TestLoad_EnvFileLeavesProcessEnvironmentAlone(t *testing.T) {
	t.Setenv(LoginEnv, "")
	t.Setenv(TokenEnv, "")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GITHUB_LOGIN=from-file\nGITHUB_TOKEN=file-token\n"), 0o600))

	_, err := Load(path, fakeEnv(map[string]string{}))
	require.NoError(t, err)
	assert.Empty(t, os.Getenv(LoginEnv))
	assert.Empty(t, os.Getenv(TokenEnv))
}
