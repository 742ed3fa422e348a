package fmdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a single message from the Data API envelope.
type APIError struct {
	Code    string `json:"code"    yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.Message, e.Code)
}

// ResponseError represents a failed Data API response.
type ResponseError struct {
	StatusCode int        `json:"-"`
	Messages   []APIError `json:"messages"`
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("unknown error (status: %d)", e.StatusCode)
	}

	if len(e.Messages) == 1 {
		return fmt.Sprintf("%s (status: %d)", e.Messages[0].Error(), e.StatusCode)
	}

	return fmt.Sprintf("multiple errors (status: %d): %v", e.StatusCode, e.Messages)
}

// FirstError returns the first error or nil.
func (e *ResponseError) FirstError() *APIError {
	if len(e.Messages) > 0 {
		return &e.Messages[0]
	}

	return nil
}

// Data API message codes.
const (
	CodeOK                  = "0"
	CodeRecordMissing       = "101"
	CodeFieldMissing        = "102"
	CodeRecordLocked        = "301"
	CodeModIDMismatch       = "306"
	CodeNoRecordsMatch      = "401"
	CodeFieldValidation     = "500"
	CodeInvalidAccount      = "212"
	CodeInsufficientAccess  = "9"
	CodeInvalidToken        = "952"
	CodeLayoutMissing       = "105"
	CodeInvalidFindCriteria = "1708"
)

// Common error types.
var (
	ErrRecordMissing  = &APIError{Code: CodeRecordMissing, Message: "Record is missing"}
	ErrNoRecordsMatch = &APIError{Code: CodeNoRecordsMatch, Message: "No records match the request"}
	ErrInvalidToken   = &APIError{Code: CodeInvalidToken, Message: "Invalid FileMaker Data API token"}
	ErrModIDMismatch  = &APIError{Code: CodeModIDMismatch, Message: "Record modification id does not match"}
)

func hasCode(err error, code string) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}

	errResp := &ResponseError{}
	if errors.As(err, &errResp) {
		for _, msg := range errResp.Messages {
			if msg.Code == code {
				return true
			}
		}
	}

	return false
}

// IsUnauthorized reports a missing, expired or rejected session token.
func IsUnauthorized(err error) bool {
	errResp := &ResponseError{}
	if errors.As(err, &errResp) && errResp.StatusCode == http.StatusUnauthorized {
		return true
	}

	return hasCode(err, CodeInvalidToken) || hasCode(err, CodeInvalidAccount)
}

// IsNoRecordsMatch checks if a find matched nothing.
func IsNoRecordsMatch(err error) bool {
	return hasCode(err, CodeNoRecordsMatch)
}

// IsRecordMissing checks if the addressed record does not exist.
func IsRecordMissing(err error) bool {
	return hasCode(err, CodeRecordMissing)
}

// IsModIDMismatch checks if an edit was rejected for a stale modId.
func IsModIDMismatch(err error) bool {
	return hasCode(err, CodeModIDMismatch)
}

// ParseResponseError parses an error envelope from JSON.
func ParseResponseError(statusCode int, data []byte) (*ResponseError, error) {
	errResp := ResponseError{StatusCode: statusCode}

	err := json.Unmarshal(data, &errResp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response error: %w", err)
	}

	return &errResp, nil
}
