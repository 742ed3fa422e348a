package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
	"github.com/stretchr/testify/require"
)

const (
	testDatabase    = "Contacts"
	testLayout      = "People"
	testToken       = "test-token"
	testRecordsPath = "/fmi/data/v1/databases/Contacts/layouts/People/records"
	testFindPath    = "/fmi/data/v1/databases/Contacts/layouts/People/_find"
	testGlobalsPath = "/fmi/data/v1/databases/Contacts/globals"
	testSessionPath = "/fmi/data/v1/databases/Contacts/sessions"
)

// NewTestClient creates a client against baseURL that already holds testToken.
func NewTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := New(&fmdata.Config{
		Host:     baseURL,
		Database: testDatabase,
		Layout:   testLayout,
		User:     "admin",
		Password: "secret",
	})
	require.NoError(t, err)

	client.session.SetToken(testToken)

	return client
}

// NewTestServer starts an httptest server closed at the end of the test.
func NewTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

// writeEnvelope answers with a successful Data API envelope around response.
func writeEnvelope(t *testing.T, w http.ResponseWriter, response interface{}) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(map[string]interface{}{
		"response": response,
		"messages": []fmdata.APIError{{Code: fmdata.CodeOK, Message: "OK"}},
	})
	require.NoError(t, err)
}

// writeAPIError answers with a Data API error envelope.
func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, `{"response":{},"messages":[{"code":"`+code+`","message":"`+message+`"}]}`)
}

// decodeBody reads a JSON request body into a generic map.
func decodeBody(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}

	err := json.NewDecoder(r.Body).Decode(&body)
	require.NoError(t, err)

	return body
}
