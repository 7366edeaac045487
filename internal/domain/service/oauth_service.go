package service

import (
	"context"
)

// OAuthTokens is the result of a successful authorization-code exchange.
type OAuthTokens struct {
	AccessToken string
	IDToken     string
}

// OAuthUser represents the profile returned by the identity provider.
type OAuthUser struct {
	ID            string // Provider-specific user ID
	Email         string
	VerifiedEmail bool
	Name          string
	GivenName     string
	FamilyName    string
	Picture       string
	Locale        string
}

// OAuthService is the client side of the authorization-code flow with one identity provider.
type OAuthService interface {
	// AuthorizationURL returns the consent page URL the browser is sent to.
	AuthorizationURL(state string) string

	// ExchangeCode trades an authorization code for tokens.
	// Failures wrap ErrFederationExchangeFailed.
	ExchangeCode(ctx context.Context, code string) (*OAuthTokens, error)

	// FetchProfile loads the user's profile with the exchanged tokens.
	// Failures wrap ErrFederationProfileFailed.
	FetchProfile(ctx context.Context, tokens *OAuthTokens) (*OAuthUser, error)
}
