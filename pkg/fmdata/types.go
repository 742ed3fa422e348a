package fmdata

import "io"

// Envelope is the wrapper every Data API response arrives in.
type Envelope[T any] struct {
	Response T          `json:"response"`
	Messages []APIError `json:"messages"`
}

// SessionResponse is the body of a successful login.
type SessionResponse struct {
	Token string `json:"token"`
}

// WriteResponse is returned by create, edit and duplicate.
type WriteResponse struct {
	RecordID string `json:"recordId,omitempty" yaml:"recordId,omitempty"`
	ModID    string `json:"modId,omitempty"    yaml:"modId,omitempty"`
}

// Record is a single record with its related portal rows.
type Record struct {
	RecordID       string                      `json:"recordId"                 yaml:"recordId"`
	ModID          string                      `json:"modId"                    yaml:"modId"`
	FieldData      map[string]any              `json:"fieldData"                yaml:"fieldData"`
	PortalData     map[string][]map[string]any `json:"portalData,omitempty"     yaml:"portalData,omitempty"`
	PortalDataInfo []PortalDataInfo            `json:"portalDataInfo,omitempty" yaml:"portalDataInfo,omitempty"`
}

// PortalDataInfo describes the rows returned for one portal.
type PortalDataInfo struct {
	Database         string `json:"database"         yaml:"database"`
	Table            string `json:"table"            yaml:"table"`
	PortalObjectName string `json:"portalObjectName" yaml:"portalObjectName"`
	FoundCount       int    `json:"foundCount"       yaml:"foundCount"`
	ReturnedCount    int    `json:"returnedCount"    yaml:"returnedCount"`
}

// DataInfo describes the found set behind a RecordSet.
type DataInfo struct {
	Database         string `json:"database"         yaml:"database"`
	Layout           string `json:"layout"           yaml:"layout"`
	Table            string `json:"table"            yaml:"table"`
	TotalRecordCount int    `json:"totalRecordCount" yaml:"totalRecordCount"`
	FoundCount       int    `json:"foundCount"       yaml:"foundCount"`
	ReturnedCount    int    `json:"returnedCount"    yaml:"returnedCount"`
}

// RecordSet is the result of get, getAll and find.
type RecordSet struct {
	DataInfo DataInfo `json:"dataInfo" yaml:"dataInfo"`
	Data     []Record `json:"data"     yaml:"data"`
}

// ProductInfo is returned by the productInfo endpoint.
type ProductInfo struct {
	ProductInfo struct {
		Name            string `json:"name"            yaml:"name"`
		BuildDate       string `json:"buildDate"       yaml:"buildDate"`
		Version         string `json:"version"         yaml:"version"`
		DateFormat      string `json:"dateFormat"      yaml:"dateFormat"`
		TimeFormat      string `json:"timeFormat"      yaml:"timeFormat"`
		TimeStampFormat string `json:"timeStampFormat" yaml:"timeStampFormat"`
	} `json:"productInfo" yaml:"productInfo"`
}

// ListOptions controls GetAllRecords. Zero values are left out of the request.
type ListOptions struct {
	Offset  int
	Limit   int
	Sorts   []Sort
	Portals []Portal
}

// FindQuery is the input to Find. Requests are sent in slice order.
type FindQuery struct {
	Requests []FindRequest
	Sorts    []Sort
	Offset   int
	Limit    int
	Portals  []Portal
}

// UploadRequest targets a container field on one record.
type UploadRequest struct {
	// File is streamed into the multipart body.
	File io.Reader
	// FileName is the name the server stores; defaults to "upload".
	FileName string
	RecordID string
	// ContainerFieldName is the container field, qualified if needed.
	ContainerFieldName string
	// ContainerFieldRepetition defaults to 1.
	ContainerFieldRepetition int
}
