package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/fmdata/internal/constants"
	"github.com/fivetwenty-io/fmdata/internal/http"
	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
)

// MetadataClient reads server-level information.
type MetadataClient struct {
	httpClient *http.Client
}

// NewMetadataClient creates a new metadata client.
func NewMetadataClient(httpClient *http.Client) *MetadataClient {
	return &MetadataClient{
		httpClient: httpClient,
	}
}

// ProductInfo returns the server name and version.
func (c *MetadataClient) ProductInfo(ctx context.Context) (*fmdata.ProductInfo, error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPathProductInfo, nil)
	if err != nil {
		return nil, fmt.Errorf("getting product info: %w", err)
	}

	var envelope fmdata.Envelope[fmdata.ProductInfo]

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing product info: %w", err)
	}

	return &envelope.Response, nil
}

// ValidateSession asks the server whether the current token is still live.
// A rejected token is reported as (false, nil); other failures are errors.
func (c *MetadataClient) ValidateSession(ctx context.Context) (bool, error) {
	_, err := c.httpClient.Get(ctx, constants.APIPathValidateSession, nil)
	if err != nil {
		if fmdata.IsUnauthorized(err) {
			return false, nil
		}

		return false, fmt.Errorf("validating session: %w", err)
	}

	return true, nil
}
