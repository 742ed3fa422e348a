package fmdata

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrHostRequired        = errors.New("host is required")
	ErrDatabaseRequired    = errors.New("database is required")
	ErrUnsupportedAuthMode = errors.New("unsupported auth mode")
	ErrIdentityProvider    = errors.New("identity provider token URL is required for fmid auth")
	ErrNoClaimTicket       = errors.New("identity provider returned no claim ticket")
	ErrNoSessionToken      = errors.New("login response carried no session token")
	ErrEmptyResponse       = errors.New("empty response data")
	ErrUploadFileRequired  = errors.New("upload file is required")
)

// AuthMode selects how Login obtains a Data API session token.
type AuthMode string

const (
	// AuthBasic sends the user and password as HTTP Basic credentials.
	AuthBasic AuthMode = "basic"

	// AuthFMID exchanges an identity provider claim ticket for a session token.
	AuthFMID AuthMode = "fmid"
)

// RecordClient covers record-level operations on the current layout.
type RecordClient interface {
	CreateRecord(ctx context.Context, fields map[string]any) (string, error)
	DeleteRecord(ctx context.Context, recordID string) (bool, error)
	EditRecord(ctx context.Context, recordID string, fields map[string]any, modID string) (string, error)
	GetRecord(ctx context.Context, recordID string, portals ...Portal) (*Record, error)
	GetAllRecords(ctx context.Context, opts *ListOptions) (*RecordSet, error)
	DuplicateRecord(ctx context.Context, recordID string) (string, error)
	UploadFile(ctx context.Context, req *UploadRequest) (json.RawMessage, error)
}

// SessionClient covers the auth/session lifecycle.
type SessionClient interface {
	Login(ctx context.Context) (string, error)
	Logout(ctx context.Context) (bool, error)
	SetLayout(layout string)
	Layout() string
	Authenticated() bool
}

// Builders are the synchronous value constructors exposed on the facade.
type Builders interface {
	CreateRequest() FindRequest
	CreateSort(field string, order SortOrder) Sort
	CreateGlobal(field string, value any) Global
	CreatePortal(name string, offset, limit int) Portal
}

// Client is the flattened Data API facade.
type Client interface {
	SessionClient
	RecordClient
	Builders

	Find(ctx context.Context, query *FindQuery) (*RecordSet, error)
	SetGlobals(ctx context.Context, globals ...Global) error
	ProductInfo(ctx context.Context) (*ProductInfo, error)
	ValidateSession(ctx context.Context) (bool, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// IdentityProvider describes the OAuth2 endpoint that issues claim tickets
// for fmid logins.
type IdentityProvider struct {
	// TokenURL is the full OAuth2 token endpoint.
	TokenURL string
	// ClientID is the public client registered with the provider.
	ClientID string
	// Scopes are requested alongside the password grant.
	Scopes []string
}

// Config represents client configuration for building a fmdata.Client.
//
// # Authentication
//
// Auth selects the login flow. AuthBasic (the default when empty) posts the
// user and password to the sessions endpoint. AuthFMID first obtains a claim
// ticket from IdentityProvider with the OAuth2 password grant and then trades
// it for a session token. Either way the resulting token is held in memory by
// the client and sent as a Bearer token on every later call. Nothing is
// persisted.
//
// # Retries
//
// The client performs no retries unless RetryMax is set. Failed calls are
// returned on the first attempt.
type Config struct {
	// Host is the FileMaker Server host, e.g. "fms.example.com". A scheme is
	// added when missing.
	Host string
	// Database is the hosted file name, without extension.
	Database string
	// User and Password are the account credentials.
	User     string
	Password string
	// Auth is "basic" or "fmid".
	Auth AuthMode
	// Layout is the initial layout; SetLayout replaces it later.
	Layout string

	// IdentityProvider is required when Auth is AuthFMID.
	IdentityProvider *IdentityProvider

	// HTTPTimeout bounds a single HTTP exchange. Zero means no timeout beyond the context.
	HTTPTimeout time.Duration
	// RetryMax enables transport retries for 5xx/429/connection errors when > 0.
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the backoff when RetryMax > 0.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// InsecureSkipVerify disables TLS verification for self-signed servers.
	InsecureSkipVerify bool
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger.
	Logger Logger
}

// EffectiveAuth returns the configured auth mode, defaulting to AuthBasic.
func (c *Config) EffectiveAuth() AuthMode {
	if c.Auth == "" {
		return AuthBasic
	}

	return c.Auth
}

// Validate checks the fields that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Host == "" {
		return ErrHostRequired
	}

	if c.Database == "" {
		return ErrDatabaseRequired
	}

	switch c.EffectiveAuth() {
	case AuthBasic:
	case AuthFMID:
		if c.IdentityProvider == nil || c.IdentityProvider.TokenURL == "" {
			return ErrIdentityProvider
		}
	default:
		return ErrUnsupportedAuthMode
	}

	return nil
}
