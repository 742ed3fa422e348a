package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/fmdata/internal/auth"
	"github.com/fivetwenty-io/fmdata/internal/constants"
	"github.com/fivetwenty-io/fmdata/internal/http"
	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
)

// RecordsClient works on records of the session's current layout.
type RecordsClient struct {
	httpClient *http.Client
	session    *auth.Session
}

// NewRecordsClient creates a new records client.
func NewRecordsClient(httpClient *http.Client, session *auth.Session) *RecordsClient {
	return &RecordsClient{
		httpClient: httpClient,
		session:    session,
	}
}

func (c *RecordsClient) recordsPath() string {
	return c.session.LayoutPath() + "/records"
}

func (c *RecordsClient) recordPath(recordID string) string {
	return c.recordsPath() + "/" + url.PathEscape(recordID)
}

// Create adds a record and returns its recordId.
func (c *RecordsClient) Create(ctx context.Context, fields map[string]any) (string, error) {
	resp, err := c.httpClient.Post(ctx, c.recordsPath(), map[string]any{
		"fieldData": nonNilFields(fields),
	})
	if err != nil {
		return "", fmt.Errorf("creating record: %w", err)
	}

	var envelope fmdata.Envelope[fmdata.WriteResponse]

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return "", fmt.Errorf("parsing create response: %w", err)
	}

	return envelope.Response.RecordID, nil
}

// Delete removes a record.
func (c *RecordsClient) Delete(ctx context.Context, recordID string) (bool, error) {
	_, err := c.httpClient.Delete(ctx, c.recordPath(recordID))
	if err != nil {
		return false, fmt.Errorf("deleting record: %w", err)
	}

	return true, nil
}

// Edit updates fields of a record and returns the new modId. A non-empty
// modID makes the server reject the edit if the record changed since.
func (c *RecordsClient) Edit(ctx context.Context, recordID string, fields map[string]any, modID string) (string, error) {
	body := map[string]any{
		"fieldData": nonNilFields(fields),
	}
	if modID != "" {
		body["modId"] = modID
	}

	resp, err := c.httpClient.Patch(ctx, c.recordPath(recordID), body)
	if err != nil {
		return "", fmt.Errorf("editing record: %w", err)
	}

	var envelope fmdata.Envelope[fmdata.WriteResponse]

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return "", fmt.Errorf("parsing edit response: %w", err)
	}

	return envelope.Response.ModID, nil
}

// Duplicate copies a record and returns the new recordId.
func (c *RecordsClient) Duplicate(ctx context.Context, recordID string) (string, error) {
	resp, err := c.httpClient.Post(ctx, c.recordPath(recordID), map[string]any{})
	if err != nil {
		return "", fmt.Errorf("duplicating record: %w", err)
	}

	var envelope fmdata.Envelope[fmdata.WriteResponse]

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return "", fmt.Errorf("parsing duplicate response: %w", err)
	}

	return envelope.Response.RecordID, nil
}

// Get fetches one record with the requested portals.
func (c *RecordsClient) Get(ctx context.Context, recordID string, portals ...fmdata.Portal) (*fmdata.Record, error) {
	query, err := fmdata.PortalQuery(portals)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, c.recordPath(recordID), query)
	if err != nil {
		return nil, fmt.Errorf("getting record: %w", err)
	}

	var envelope fmdata.Envelope[fmdata.RecordSet]

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing record response: %w", err)
	}

	if len(envelope.Response.Data) == 0 {
		return nil, fmt.Errorf("getting record %s: %w", recordID, fmdata.ErrEmptyResponse)
	}

	return &envelope.Response.Data[0], nil
}

// GetAll lists records of the layout. A nil opts uses the server defaults.
func (c *RecordsClient) GetAll(ctx context.Context, opts *fmdata.ListOptions) (*fmdata.RecordSet, error) {
	query, err := listQuery(opts)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, c.recordsPath(), query)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	var envelope fmdata.Envelope[fmdata.RecordSet]

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing records list: %w", err)
	}

	return &envelope.Response, nil
}

// Upload sends a file into a container field and returns the raw response.
func (c *RecordsClient) Upload(ctx context.Context, req *fmdata.UploadRequest) (json.RawMessage, error) {
	if req == nil || req.File == nil {
		return nil, fmdata.ErrUploadFileRequired
	}

	repetition := req.ContainerFieldRepetition
	if repetition <= 0 {
		repetition = constants.DefaultContainerRepetition
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = constants.DefaultUploadFileName
	}

	path := fmt.Sprintf("%s/containers/%s/%d",
		c.recordPath(req.RecordID), url.PathEscape(req.ContainerFieldName), repetition)

	respBody, err := uploadMultipartFile(ctx, c.httpClient, path, fileName, req)
	if err != nil {
		return nil, err
	}

	return respBody, nil
}

func uploadMultipartFile(ctx context.Context, httpClient *http.Client, path, fileName string, req *fmdata.UploadRequest) ([]byte, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(constants.UploadFormField, fileName)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}

	_, err = io.Copy(part, req.File)
	if err != nil {
		return nil, fmt.Errorf("writing file to form: %w", err)
	}

	err = writer.Close()
	if err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	resp, err := httpClient.PostRaw(ctx, path, &buf, writer.FormDataContentType())
	if err != nil {
		return nil, fmt.Errorf("uploading to container %s: %w", req.ContainerFieldName, err)
	}

	return resp.Body, nil
}

func listQuery(opts *fmdata.ListOptions) (url.Values, error) {
	if opts == nil {
		return nil, nil
	}

	query, err := fmdata.PortalQuery(opts.Portals)
	if err != nil {
		return nil, err
	}

	if opts.Offset > 0 {
		query.Set("_offset", strconv.Itoa(opts.Offset))
	}

	if opts.Limit > 0 {
		query.Set("_limit", strconv.Itoa(opts.Limit))
	}

	if len(opts.Sorts) > 0 {
		sorts, err := fmdata.EncodeSorts(opts.Sorts)
		if err != nil {
			return nil, err
		}

		query.Set("_sort", sorts)
	}

	return query, nil
}

func nonNilFields(fields map[string]any) map[string]any {
	if fields == nil {
		return map[string]any{}
	}

	return fields
}
