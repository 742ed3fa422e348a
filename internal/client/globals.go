package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/fmdata/internal/auth"
	"github.com/fivetwenty-io/fmdata/internal/http"
	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
)

// GlobalsClient sets global fields for the session.
type GlobalsClient struct {
	httpClient *http.Client
	session    *auth.Session
}

// NewGlobalsClient creates a new globals client.
func NewGlobalsClient(httpClient *http.Client, session *auth.Session) *GlobalsClient {
	return &GlobalsClient{
		httpClient: httpClient,
		session:    session,
	}
}

// Set merges globals into one globalFields object and patches it. When two
// entries name the same field the later one is sent.
func (c *GlobalsClient) Set(ctx context.Context, globals ...fmdata.Global) error {
	path := c.session.DatabasePath() + "/globals"

	_, err := c.httpClient.Patch(ctx, path, map[string]any{
		"globalFields": fmdata.MergeGlobals(globals),
	})
	if err != nil {
		return fmt.Errorf("setting globals: %w", err)
	}

	return nil
}
