package client

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fivetwenty-io/fmdata/internal/auth"
	"github.com/fivetwenty-io/fmdata/internal/constants"
	"github.com/fivetwenty-io/fmdata/internal/http"
	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
)

// Static errors for err113 compliance.
var (
	ErrHostRequired = errors.New("host is required")
)

// Client implements the fmdata.Client interface. Every resource client holds
// the same *auth.Session, so a layout change is seen by all of them without
// rebuilding anything.
type Client struct {
	httpClient *http.Client
	manager    *auth.Manager
	session    *auth.Session

	// Resource clients
	records  *RecordsClient
	find     *FindClient
	globals  *GlobalsClient
	metadata *MetadataClient
}

var _ fmdata.Client = (*Client)(nil)

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *fmdata.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.InsecureSkipVerify {
		httpOpts = append(httpOpts, http.WithInsecureSkipVerify(true))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a client for config.Host, which must already carry a scheme.
// No request is made until Login.
func New(config *fmdata.Config) (*Client, error) {
	if config.Host == "" {
		return nil, ErrHostRequired
	}

	session := auth.NewSession(config.Database, config.Layout)
	httpClient := http.NewClient(config.Host, session, createHTTPClientOptions(config)...)

	manager := auth.NewManager(session, auth.Credentials{
		User:             config.User,
		Password:         config.Password,
		Mode:             config.EffectiveAuth(),
		IdentityProvider: config.IdentityProvider,
	}, httpClient, config.Logger)

	client := &Client{
		httpClient: httpClient,
		manager:    manager,
		session:    session,
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.records = NewRecordsClient(c.httpClient, c.session)
	c.find = NewFindClient(c.httpClient, c.session)
	c.globals = NewGlobalsClient(c.httpClient, c.session)
	c.metadata = NewMetadataClient(c.httpClient)
}

// Session lifecycle

// Login implements fmdata.Client.Login.
func (c *Client) Login(ctx context.Context) (string, error) {
	return c.manager.Login(ctx)
}

// Logout implements fmdata.Client.Logout.
func (c *Client) Logout(ctx context.Context) (bool, error) {
	return c.manager.Logout(ctx)
}

// SetLayout implements fmdata.Client.SetLayout. Requests already building
// their URL may still use the previous layout.
func (c *Client) SetLayout(layout string) {
	c.manager.SetLayout(layout)
}

// Layout implements fmdata.Client.Layout.
func (c *Client) Layout() string {
	return c.session.Layout()
}

// Authenticated implements fmdata.Client.Authenticated.
func (c *Client) Authenticated() bool {
	return c.session.Authenticated()
}

// Records

// CreateRecord implements fmdata.Client.CreateRecord.
func (c *Client) CreateRecord(ctx context.Context, fields map[string]any) (string, error) {
	return c.records.Create(ctx, fields)
}

// DeleteRecord implements fmdata.Client.DeleteRecord.
func (c *Client) DeleteRecord(ctx context.Context, recordID string) (bool, error) {
	return c.records.Delete(ctx, recordID)
}

// EditRecord implements fmdata.Client.EditRecord.
func (c *Client) EditRecord(ctx context.Context, recordID string, fields map[string]any, modID string) (string, error) {
	return c.records.Edit(ctx, recordID, fields, modID)
}

// GetRecord implements fmdata.Client.GetRecord.
func (c *Client) GetRecord(ctx context.Context, recordID string, portals ...fmdata.Portal) (*fmdata.Record, error) {
	return c.records.Get(ctx, recordID, portals...)
}

// GetAllRecords implements fmdata.Client.GetAllRecords.
func (c *Client) GetAllRecords(ctx context.Context, opts *fmdata.ListOptions) (*fmdata.RecordSet, error) {
	return c.records.GetAll(ctx, opts)
}

// DuplicateRecord implements fmdata.Client.DuplicateRecord.
func (c *Client) DuplicateRecord(ctx context.Context, recordID string) (string, error) {
	return c.records.Duplicate(ctx, recordID)
}

// UploadFile implements fmdata.Client.UploadFile.
func (c *Client) UploadFile(ctx context.Context, req *fmdata.UploadRequest) (json.RawMessage, error) {
	return c.records.Upload(ctx, req)
}

// Find and globals

// Find implements fmdata.Client.Find.
func (c *Client) Find(ctx context.Context, query *fmdata.FindQuery) (*fmdata.RecordSet, error) {
	return c.find.Exec(ctx, query)
}

// SetGlobals implements fmdata.Client.SetGlobals.
func (c *Client) SetGlobals(ctx context.Context, globals ...fmdata.Global) error {
	return c.globals.Set(ctx, globals...)
}

// ProductInfo implements fmdata.Client.ProductInfo.
func (c *Client) ProductInfo(ctx context.Context) (*fmdata.ProductInfo, error) {
	return c.metadata.ProductInfo(ctx)
}

// ValidateSession implements fmdata.Client.ValidateSession.
func (c *Client) ValidateSession(ctx context.Context) (bool, error) {
	return c.metadata.ValidateSession(ctx)
}

// Builders

// CreateRequest implements fmdata.Client.CreateRequest.
func (c *Client) CreateRequest() fmdata.FindRequest {
	return fmdata.NewFindRequest()
}

// CreateSort implements fmdata.Client.CreateSort.
func (c *Client) CreateSort(field string, order fmdata.SortOrder) fmdata.Sort {
	return fmdata.NewSort(field, order)
}

// CreateGlobal implements fmdata.Client.CreateGlobal.
func (c *Client) CreateGlobal(field string, value any) fmdata.Global {
	return fmdata.NewGlobal(field, value)
}

// CreatePortal implements fmdata.Client.CreatePortal.
func (c *Client) CreatePortal(name string, offset, limit int) fmdata.Portal {
	return fmdata.NewPortal(name, offset, limit)
}
