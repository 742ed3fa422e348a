package auth

import (
	"context"
	"net/url"
	"sync"

	"github.com/fivetwenty-io/fmdata/internal/constants"
)

// Session is the per-client auth state: the current token and layout. The
// lock keeps individual reads and writes consistent; it does not tie a request
// to the layout that was current when the caller started it.
type Session struct {
	mutex    sync.RWMutex
	database string
	layout   string
	token    string
}

// NewSession creates an unauthenticated session.
func NewSession(database, layout string) *Session {
	return &Session{
		database: database,
		layout:   layout,
	}
}

// GetToken implements http.TokenSource. It never fails; an empty token means
// the request goes out unauthenticated and the server decides.
func (s *Session) GetToken(ctx context.Context) (string, error) {
	return s.Token(), nil
}

// Token returns the current token, or "" when logged out.
func (s *Session) Token() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.token
}

// SetToken stores a token returned by login.
func (s *Session) SetToken(token string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = token
}

// ClearToken drops the token.
func (s *Session) ClearToken() {
	s.SetToken("")
}

// Authenticated reports whether a token is held. Expiry is not tracked.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Layout returns the active layout.
func (s *Session) Layout() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.layout
}

// SetLayout replaces the active layout. The token is left alone.
func (s *Session) SetLayout(layout string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.layout = layout
}

// Database returns the database name.
func (s *Session) Database() string {
	return s.database
}

// DatabasePath returns /fmi/data/v1/databases/{database}.
func (s *Session) DatabasePath() string {
	return constants.APIBasePath + "/databases/" + url.PathEscape(s.database)
}

// LayoutPath returns the database path scoped to the active layout.
func (s *Session) LayoutPath() string {
	return s.DatabasePath() + "/layouts/" + url.PathEscape(s.Layout())
}

// SessionsPath returns the login endpoint.
func (s *Session) SessionsPath() string {
	return s.DatabasePath() + "/sessions"
}
