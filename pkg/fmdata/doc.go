// Package fmdata provides types, interfaces, and helpers for working with the
// FileMaker Data API.
//
// # Overview
//
// The fmdata package defines the Client interface, its configuration, the
// response types (Record, RecordSet, ProductInfo) and the value builders used
// to shape requests (FindRequest, Sort, Portal, Global). The concrete client is
// built by the fmclient package.
//
// # Sessions
//
// A client is bound to one database. Login opens a Data API session and the
// returned token is attached to every later request until Logout. Basic
// authentication and FileMaker ID (an OAuth2 password grant against an
// identity provider, followed by an FMID claim ticket) are supported.
//
// # Finds
//
// Find requests are immutable values built in call order:
//
//	query := &fmdata.FindQuery{
//	  Requests: []fmdata.FindRequest{
//	    cli.CreateRequest().Where("state").Is("CA"),
//	    cli.CreateRequest().Where("city").Is("Fresno").Omit(),
//	  },
//	  Sorts: []fmdata.Sort{cli.CreateSort("name", fmdata.SortAscend)},
//	  Limit: 50,
//	}
//	set, err := cli.Find(ctx, query)
//
// # Errors
//
// Failed calls return a *ResponseError carrying the HTTP status and the
// messages of the Data API envelope. IsUnauthorized, IsNoRecordsMatch,
// IsRecordMissing and IsModIDMismatch branch on the common codes.
package fmdata
