package fmdata_test

import (
	"testing"

	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  fmdata.Config
		wantErr error
	}{
		{
			name:    "missing host",
			config:  fmdata.Config{Database: "Contacts"},
			wantErr: fmdata.ErrHostRequired,
		},
		{
			name:    "missing database",
			config:  fmdata.Config{Host: "fms.example.com"},
			wantErr: fmdata.ErrDatabaseRequired,
		},
		{
			name:   "basic by default",
			config: fmdata.Config{Host: "fms.example.com", Database: "Contacts"},
		},
		{
			name:    "fmid without provider",
			config:  fmdata.Config{Host: "fms.example.com", Database: "Contacts", Auth: fmdata.AuthFMID},
			wantErr: fmdata.ErrIdentityProvider,
		},
		{
			name: "fmid with provider",
			config: fmdata.Config{
				Host:             "fms.example.com",
				Database:         "Contacts",
				Auth:             fmdata.AuthFMID,
				IdentityProvider: &fmdata.IdentityProvider{TokenURL: "https://idp.example.com/token"},
			},
		},
		{
			name:    "unknown mode",
			config:  fmdata.Config{Host: "fms.example.com", Database: "Contacts", Auth: "kerberos"},
			wantErr: fmdata.ErrUnsupportedAuthMode,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.config.Validate()
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_EffectiveAuth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, fmdata.AuthBasic, (&fmdata.Config{}).EffectiveAuth())
	assert.Equal(t, fmdata.AuthFMID, (&fmdata.Config{Auth: fmdata.AuthFMID}).EffectiveAuth())
}
