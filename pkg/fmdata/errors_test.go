package fmdata_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	err := &fmdata.APIError{Code: "952", Message: "Invalid FileMaker Data API token"}

	assert.Equal(t, "Invalid FileMaker Data API token (code: 952)", err.Error())
}

func TestResponseError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response *fmdata.ResponseError
		expected string
	}{
		{
			name:     "no messages",
			response: &fmdata.ResponseError{StatusCode: http.StatusBadGateway},
			expected: "unknown error (status: 502)",
		},
		{
			name: "single message",
			response: &fmdata.ResponseError{
				StatusCode: http.StatusInternalServerError,
				Messages:   []fmdata.APIError{{Code: "101", Message: "Record is missing"}},
			},
			expected: "Record is missing (code: 101) (status: 500)",
		},
		{
			name: "several messages",
			response: &fmdata.ResponseError{
				StatusCode: http.StatusInternalServerError,
				Messages: []fmdata.APIError{
					{Code: "102", Message: "Field is missing"},
					{Code: "500", Message: "Date value does not meet validation entry options"},
				},
			},
			expected: "multiple errors (status: 500)",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Contains(t, testCase.response.Error(), testCase.expected)
		})
	}
}

func TestResponseError_FirstError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, (&fmdata.ResponseError{}).FirstError())

	resp := &fmdata.ResponseError{Messages: []fmdata.APIError{{Code: "401"}, {Code: "0"}}}
	assert.Equal(t, "401", resp.FirstError().Code)
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	wrap := func(status int, code string) error {
		return fmt.Errorf("calling server: %w", &fmdata.ResponseError{
			StatusCode: status,
			Messages:   []fmdata.APIError{{Code: code, Message: "message"}},
		})
	}

	tests := []struct {
		name      string
		err       error
		check     func(error) bool
		predicate bool
	}{
		{"unauthorized by status", wrap(http.StatusUnauthorized, "10"), fmdata.IsUnauthorized, true},
		{"unauthorized by token code", wrap(http.StatusInternalServerError, fmdata.CodeInvalidToken), fmdata.IsUnauthorized, true},
		{"unauthorized by account code", wrap(http.StatusInternalServerError, fmdata.CodeInvalidAccount), fmdata.IsUnauthorized, true},
		{"authorized", wrap(http.StatusInternalServerError, fmdata.CodeRecordMissing), fmdata.IsUnauthorized, false},
		{"no records match", wrap(http.StatusInternalServerError, fmdata.CodeNoRecordsMatch), fmdata.IsNoRecordsMatch, true},
		{"record missing", wrap(http.StatusInternalServerError, fmdata.CodeRecordMissing), fmdata.IsRecordMissing, true},
		{"mod id mismatch", wrap(http.StatusInternalServerError, fmdata.CodeModIDMismatch), fmdata.IsModIDMismatch, true},
		{"sentinel api error", fmdata.ErrRecordMissing, fmdata.IsRecordMissing, true},
		{"plain error", errors.New("boom"), fmdata.IsRecordMissing, false},
		{"nil error", nil, fmdata.IsUnauthorized, false},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.predicate, testCase.check(testCase.err))
		})
	}
}

func TestParseResponseError(t *testing.T) {
	t.Parallel()

	t.Run("envelope", func(t *testing.T) {
		t.Parallel()

		errResp, err := fmdata.ParseResponseError(http.StatusUnauthorized,
			[]byte(`{"messages":[{"code":"952","message":"Invalid FileMaker Data API token (*)"}],"response":{}}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, errResp.StatusCode)
		require.Len(t, errResp.Messages, 1)
		assert.Equal(t, fmdata.CodeInvalidToken, errResp.Messages[0].Code)
	})

	t.Run("not json", func(t *testing.T) {
		t.Parallel()

		_, err := fmdata.ParseResponseError(http.StatusBadGateway, []byte("<html>bad gateway</html>"))
		require.Error(t, err)
	})
}
