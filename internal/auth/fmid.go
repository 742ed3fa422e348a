package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
)

// claimTicket runs the first half of an fmid login: the identity provider
// checks the account with the password grant and answers with an ID token,
// which the sessions endpoint accepts as the claim ticket.
func (m *Manager) claimTicket(ctx context.Context) (string, error) {
	provider := m.credentials.IdentityProvider
	if provider == nil || provider.TokenURL == "" {
		return "", fmdata.ErrIdentityProvider
	}

	config := &oauth2.Config{
		ClientID: provider.ClientID,
		Endpoint: oauth2.Endpoint{
			TokenURL:  provider.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		Scopes: provider.Scopes,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient.StandardClient())

	token, err := config.PasswordCredentialsToken(ctx, m.credentials.User, m.credentials.Password)
	if err != nil {
		return "", fmt.Errorf("requesting claim ticket: %w", err)
	}

	if idToken, ok := token.Extra("id_token").(string); ok && idToken != "" {
		return idToken, nil
	}

	if token.AccessToken != "" {
		return token.AccessToken, nil
	}

	return "", fmdata.ErrNoClaimTicket
}
