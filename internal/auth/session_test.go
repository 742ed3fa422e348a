package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/fivetwenty-io/fmdata/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Token(t *testing.T) {
	t.Parallel()

	session := auth.NewSession("Contacts", "People")
	assert.False(t, session.Authenticated())

	token, err := session.GetToken(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)

	session.SetToken("abc")
	assert.True(t, session.Authenticated())
	assert.Equal(t, "abc", session.Token())

	session.ClearToken()
	assert.False(t, session.Authenticated())
}

func TestSession_Paths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		database     string
		layout       string
		databasePath string
		layoutPath   string
	}{
		{
			name:         "plain names",
			database:     "Contacts",
			layout:       "People",
			databasePath: "/fmi/data/v1/databases/Contacts",
			layoutPath:   "/fmi/data/v1/databases/Contacts/layouts/People",
		},
		{
			name:         "names with spaces and slashes are escaped",
			database:     "My Contacts",
			layout:       "People/List",
			databasePath: "/fmi/data/v1/databases/My%20Contacts",
			layoutPath:   "/fmi/data/v1/databases/My%20Contacts/layouts/People%2FList",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			session := auth.NewSession(tt.database, tt.layout)
			assert.Equal(t, tt.databasePath, session.DatabasePath())
			assert.Equal(t, tt.layoutPath, session.LayoutPath())
			assert.Equal(t, tt.databasePath+"/sessions", session.SessionsPath())
		})
	}
}

func TestSession_SetLayoutKeepsToken(t *testing.T) {
	t.Parallel()

	session := auth.NewSession("Contacts", "People")
	session.SetToken("abc")
	session.SetLayout("Companies")

	assert.Equal(t, "Companies", session.Layout())
	assert.Equal(t, "abc", session.Token())
	assert.Contains(t, session.LayoutPath(), "/layouts/Companies")
}

func TestSession_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	session := auth.NewSession("Contacts", "People")

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()

			session.SetLayout("Companies")
			session.SetToken("abc")
		}()

		go func() {
			defer wg.Done()

			_ = session.LayoutPath()
			_, _ = session.GetToken(context.Background())
		}()
	}

	wg.Wait()
	assert.Equal(t, "Companies", session.Layout())
}
