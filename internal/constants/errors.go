package constants

import "errors"

// CLI configuration errors.
var (
	ErrHostRequired     = errors.New("host is required, use --host or FMDATA_HOST")
	ErrDatabaseRequired = errors.New("database is required, use --database or FMDATA_DATABASE")
	ErrUserRequired     = errors.New("user is required, use --user or FMDATA_USER")
	ErrLayoutRequired   = errors.New("layout is required, use --layout or FMDATA_LAYOUT")
)

// CLI argument errors.
var (
	ErrInvalidFieldAssignment = errors.New("field assignment must look like name=value")
	ErrInvalidSortSpec        = errors.New("sort must look like field or field:order")
	ErrInvalidPortalSpec      = errors.New("portal must look like name or name:offset:limit")
	ErrUnknownOutputFormat    = errors.New("unknown output format")
)
