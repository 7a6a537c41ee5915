package apptests

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefaultTargetConfig(t *testing.T) {
	config := DefaultTargetConfig()
	assert.Equal(t, "http://localhost:3001", config.FrontendBaseURL)
	assert.Equal(t, "http://localhost:3000", config.BackendBaseURL)
	assert.Equal(t, 10*time.Second, time.Duration(config.RequestTimeout))
	assert.True(t, config.Headless)
}

func TestLoadConfigFileOverridesOnlyWhatItNames(t *testing.T) {
	path := writeTempConfig(t, `
frontendBaseURL: https://qa.example.com
requestTimeout: 30s
`)
	config, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://qa.example.com", config.FrontendBaseURL)
	assert.Equal(t, 30*time.Second, time.Duration(config.RequestTimeout))
	assert.Equal(t, "http://localhost:3000", config.BackendBaseURL,
		"unset properties keep their defaults")
}

func TestLoadConfigFileRejectsBadDuration(t *testing.T) {
	path := writeTempConfig(t, `requestTimeout: not-a-duration`)
	_, err := LoadConfigFile(path)
	assert.Error(t, err)
}

func TestLoadConfigFileRejectsMissingFile(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "no-such-file.yml"))
	assert.Error(t, err)
}

func TestURLHelpersTrimTrailingSlashes(t *testing.T) {
	config := DefaultTargetConfig()
	config.FrontendBaseURL = "http://localhost:3001/"
	config.BackendBaseURL = "http://localhost:3000/"

	assert.Equal(t, "http://localhost:3001/about", config.frontendURL("/about"))
	assert.Equal(t, "http://localhost:3000/graphql", config.graphQLEndpoint())
}
