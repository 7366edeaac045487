// Package google implements the OAuth authorization-code client for Google accounts.
package google

import (
	"context"
	"net/http"
	"time"

	"gatekeeper/config"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	googleendpoint "golang.org/x/oauth2/google"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const defaultTimeout = 10 * time.Second

// OAuthService exchanges authorization codes with Google and loads the
// signed-in user's profile from the userinfo endpoint.
type OAuthService struct {
	oauthConfig      *oauth2.Config
	httpClient       *http.Client
	userInfoEndpoint string
}

// NewOAuthService creates a new Google OAuth service
func NewOAuthService(cfg *config.Config) service.OAuthService {
	gcfg := cfg.GoogleOAuth
	if gcfg == nil {
		gcfg = &config.GoogleOAuthConfig{}
	}

	endpoint := googleendpoint.Endpoint
	if gcfg.AuthURL != "" {
		endpoint.AuthURL = gcfg.AuthURL
	}
	if gcfg.TokenURL != "" {
		endpoint.TokenURL = gcfg.TokenURL
	}
	// Client credentials travel in the form body next to the code.
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	scopes := gcfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{googleoauth2.UserinfoProfileScope, googleoauth2.UserinfoEmailScope}
	}

	timeout := gcfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &OAuthService{
		oauthConfig: &oauth2.Config{
			ClientID:     gcfg.ClientID,
			ClientSecret: gcfg.ClientSecret,
			RedirectURL:  gcfg.RedirectURI,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
		httpClient:       &http.Client{Timeout: timeout},
		userInfoEndpoint: gcfg.UserInfoEndpoint,
	}
}

// AuthorizationURL builds the consent page URL. Offline access and a forced
// consent prompt make Google return a refresh-capable grant every time.
func (s *OAuthService) AuthorizationURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeCode posts the authorization code to the token endpoint.
func (s *OAuthService) ExchangeCode(ctx context.Context, code string) (*service.OAuthTokens, error) {
	if code == "" {
		return nil, domainerrors.ErrFederationExchangeFailed.WrapMessage("missing authorization code")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, domainerrors.ErrFederationExchangeFailed.WrapMessage(err.Error())
	}

	idToken, _ := token.Extra("id_token").(string)
	if token.AccessToken == "" || idToken == "" {
		return nil, domainerrors.ErrFederationExchangeFailed.WrapMessage("token response is missing access_token or id_token")
	}

	return &service.OAuthTokens{
		AccessToken: token.AccessToken,
		IDToken:     idToken,
	}, nil
}

// FetchProfile loads the userinfo document, authenticating with the id token
// as Bearer and passing the access token as a query parameter.
func (s *OAuthService) FetchProfile(ctx context.Context, tokens *service.OAuthTokens) (*service.OAuthUser, error) {
	if tokens == nil || tokens.IDToken == "" {
		return nil, domainerrors.ErrFederationProfileFailed.WrapMessage("missing id token")
	}

	client := &http.Client{
		Timeout: s.httpClient.Timeout,
		Transport: &bearerTransport{
			idToken:     tokens.IDToken,
			accessToken: tokens.AccessToken,
			base:        s.httpClient.Transport,
		},
	}

	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if s.userInfoEndpoint != "" {
		opts = append(opts, option.WithEndpoint(s.userInfoEndpoint))
	}

	svc, err := googleoauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, domainerrors.ErrFederationProfileFailed.WrapMessage(errors.Wrap(err, "create userinfo client").Error())
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, domainerrors.ErrFederationProfileFailed.WrapMessage(err.Error())
	}
	if info.Email == "" {
		return nil, domainerrors.ErrFederationProfileFailed.WrapMessage("userinfo response has no email")
	}

	return &service.OAuthUser{
		ID:            info.Id,
		Email:         info.Email,
		VerifiedEmail: info.VerifiedEmail != nil && *info.VerifiedEmail,
		Name:          info.Name,
		GivenName:     info.GivenName,
		FamilyName:    info.FamilyName,
		Picture:       info.Picture,
		Locale:        info.Locale,
	}, nil
}

// bearerTransport authenticates userinfo requests with the exchanged tokens.
type bearerTransport struct {
	idToken     string
	accessToken string
	base        http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.idToken)

	if t.accessToken != "" {
		query := clone.URL.Query()
		query.Set("access_token", t.accessToken)
		clone.URL.RawQuery = query.Encode()
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	return base.RoundTrip(clone)
}
