package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/fmdata/internal/auth"
	"github.com/fivetwenty-io/fmdata/internal/http"
	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
)

// FindClient runs _find queries on the session's current layout.
type FindClient struct {
	httpClient *http.Client
	session    *auth.Session
}

// NewFindClient creates a new find client.
func NewFindClient(httpClient *http.Client, session *auth.Session) *FindClient {
	return &FindClient{
		httpClient: httpClient,
		session:    session,
	}
}

// Exec sends the query. The server ORs the inclusion requests and subtracts
// the omit requests; request order is sent unchanged.
func (c *FindClient) Exec(ctx context.Context, query *fmdata.FindQuery) (*fmdata.RecordSet, error) {
	path := c.session.LayoutPath() + "/_find"

	resp, err := c.httpClient.Post(ctx, path, findBody(query))
	if err != nil {
		return nil, fmt.Errorf("finding records: %w", err)
	}

	var envelope fmdata.Envelope[fmdata.RecordSet]

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing find response: %w", err)
	}

	return &envelope.Response, nil
}

func findBody(query *fmdata.FindQuery) map[string]any {
	if query == nil {
		query = &fmdata.FindQuery{}
	}

	requests := query.Requests
	if requests == nil {
		requests = []fmdata.FindRequest{}
	}

	body := map[string]any{
		"query": requests,
	}

	if len(query.Sorts) > 0 {
		body["sort"] = query.Sorts
	}

	if query.Offset > 0 {
		body["offset"] = strconv.Itoa(query.Offset)
	}

	if query.Limit > 0 {
		body["limit"] = strconv.Itoa(query.Limit)
	}

	if len(query.Portals) > 0 {
		body["portal"] = fmdata.PortalNames(query.Portals)

		for _, portal := range query.Portals {
			for key, value := range portal.FindParams() {
				body[key] = value
			}
		}
	}

	return body
}
