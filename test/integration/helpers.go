//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/fivetwenty-io/fmdata/pkg/fmclient"
	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	Host     string
	Database string
	Layout   string
	User     string
	Password string
	Verbose  bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Host:     os.Getenv("FMDATA_TEST_HOST"),
		Database: os.Getenv("FMDATA_TEST_DATABASE"),
		Layout:   os.Getenv("FMDATA_TEST_LAYOUT"),
		User:     os.Getenv("FMDATA_TEST_USER"),
		Password: os.Getenv("FMDATA_TEST_PASSWORD"),
		Verbose:  os.Getenv("FMDATA_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips test if required config is missing.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Host == "" || config.Database == "" || config.Layout == "" {
		t.Skip("FMDATA_TEST_HOST, FMDATA_TEST_DATABASE or FMDATA_TEST_LAYOUT not set, skipping integration test")
	}
}

// Connect logs in to the test database and logs out when the test ends.
func (config *TestConfig) Connect(t *testing.T) fmdata.Client {
	t.Helper()

	config.SkipIfMissingConfig(t)

	client, err := fmclient.Connect(context.Background(), &fmdata.Config{
		Host:     config.Host,
		Database: config.Database,
		Layout:   config.Layout,
		User:     config.User,
		Password: config.Password,
		Debug:    config.Verbose,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = client.Logout(context.Background())
	})

	return client
}
