package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"

	"github.com/fivetwenty-io/fmdata/internal/constants"
	"github.com/fivetwenty-io/fmdata/internal/http"
	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
)

// Credentials are fixed for the lifetime of a Manager.
type Credentials struct {
	User             string
	Password         string
	Mode             fmdata.AuthMode
	IdentityProvider *fmdata.IdentityProvider
}

// Manager drives the session lifecycle: login, logout and layout changes.
type Manager struct {
	session     *Session
	credentials Credentials
	httpClient  *http.Client
	logger      fmdata.Logger
}

// NewManager creates a manager for session. logger may be nil.
func NewManager(session *Session, credentials Credentials, httpClient *http.Client, logger fmdata.Logger) *Manager {
	if credentials.Mode == "" {
		credentials.Mode = fmdata.AuthBasic
	}

	return &Manager{
		session:     session,
		credentials: credentials,
		httpClient:  httpClient,
		logger:      logger,
	}
}

// Session returns the shared session handle.
func (m *Manager) Session() *Session {
	return m.session
}

// Login opens a Data API session and stores its token. Nothing is retried.
func (m *Manager) Login(ctx context.Context) (string, error) {
	var authorization string

	switch m.credentials.Mode {
	case fmdata.AuthBasic:
		authorization = basicAuthorization(m.credentials.User, m.credentials.Password)
	case fmdata.AuthFMID:
		ticket, err := m.claimTicket(ctx)
		if err != nil {
			return "", err
		}

		authorization = constants.FMIDScheme + ticket
	default:
		return "", fmt.Errorf("%w: %q", fmdata.ErrUnsupportedAuthMode, m.credentials.Mode)
	}

	token, err := m.openSession(ctx, authorization)
	if err != nil {
		return "", err
	}

	m.session.SetToken(token)
	m.info("Data API session opened", map[string]interface{}{
		"database": m.session.Database(),
		"auth":     string(m.credentials.Mode),
	})

	return token, nil
}

// Logout deletes the session on the server and then forgets the token. It is
// sent even when no token is held; the server's answer is returned as-is.
func (m *Manager) Logout(ctx context.Context) (bool, error) {
	path := m.session.SessionsPath() + "/" + url.PathEscape(m.session.Token())

	_, err := m.httpClient.Delete(ctx, path)
	if err != nil {
		return false, fmt.Errorf("closing session: %w", err)
	}

	m.session.ClearToken()
	m.info("Data API session closed", map[string]interface{}{
		"database": m.session.Database(),
	})

	return true, nil
}

// SetLayout switches the layout used by every resource client sharing the session.
func (m *Manager) SetLayout(layout string) {
	m.session.SetLayout(layout)
}

func (m *Manager) openSession(ctx context.Context, authorization string) (string, error) {
	resp, err := m.httpClient.Do(ctx, &http.Request{
		Method: nethttp.MethodPost,
		Path:   m.session.SessionsPath(),
		Body:   map[string]interface{}{},
		Headers: map[string]string{
			constants.HeaderAuthorization: authorization,
		},
	})
	if err != nil {
		return "", fmt.Errorf("opening session: %w", err)
	}

	var envelope fmdata.Envelope[fmdata.SessionResponse]

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return "", fmt.Errorf("parsing session response: %w", err)
	}

	token := envelope.Response.Token
	if token == "" {
		token = resp.Headers.Get(constants.HeaderAccessToken)
	}

	if token == "" {
		return "", fmdata.ErrNoSessionToken
	}

	return token, nil
}

func (m *Manager) info(msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.Info(msg, fields)
	}
}

func basicAuthorization(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}
