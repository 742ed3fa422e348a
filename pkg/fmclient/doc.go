// Package fmclient provides the primary entry point for constructing a
// FileMaker Data API client that implements the fmdata.Client interface.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/fmdata/pkg/fmclient"
//	  "github.com/fivetwenty-io/fmdata/pkg/fmdata"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := fmclient.New(&fmdata.Config{
//	    Host:     "fms.example.com",
//	    Database: "Contacts",
//	    Layout:   "People",
//	    User:     "admin",
//	    Password: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  if _, err := cli.Login(ctx); err != nil { log.Fatal(err) }
//	  defer func() { _, _ = cli.Logout(ctx) }()
//
//	  id, err := cli.CreateRecord(ctx, map[string]any{"name": "bill"})
//	  if err != nil { log.Fatal(err) }
//	  _ = id
//	}
//
// Connect wraps New and Login for callers that want a ready session.
//
// # TLS and development mode
//
// Config.InsecureSkipVerify is refused unless FMDATA_DEV_MODE is "true" or "1".
package fmclient
