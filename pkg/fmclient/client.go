// Package fmclient provides the main entry point for creating FileMaker Data API clients.
package fmclient

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/fmdata/internal/client"
	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
)

// Static errors for err113 compliance.
var (
	ErrSkipTLSOnlyInDev = errors.New("skipping TLS verification is only allowed in development")
)

// New creates a FileMaker Data API client. The client starts logged out.
func New(config *fmdata.Config) (fmdata.Client, error) {
	if config == nil {
		return nil, fmdata.ErrConfigRequired
	}

	// Normalize host on a copy; the caller's config is left as given.
	normalized := *config

	host := strings.TrimSuffix(normalized.Host, "/")
	if host != "" && !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}

	normalized.Host = host
	config = &normalized

	err := config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if config.InsecureSkipVerify && !isDevelopmentEnvironment() {
		return nil, fmt.Errorf("%w (set FMDATA_DEV_MODE=true)", ErrSkipTLSOnlyInDev)
	}

	client, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// Connect creates a client and opens a session.
func Connect(ctx context.Context, config *fmdata.Config) (fmdata.Client, error) {
	client, err := New(config)
	if err != nil {
		return nil, err
	}

	_, err = client.Login(ctx)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	return client, nil
}

// NewWithPassword creates a client using basic authentication.
func NewWithPassword(host, database, layout, user, password string) (fmdata.Client, error) {
	return New(&fmdata.Config{
		Host:     host,
		Database: database,
		Layout:   layout,
		User:     user,
		Password: password,
		Auth:     fmdata.AuthBasic,
	})
}

// isDevelopmentEnvironment checks if we're in a development environment.
func isDevelopmentEnvironment() bool {
	devMode := os.Getenv("FMDATA_DEV_MODE")

	return devMode == "true" || devMode == "1"
}
