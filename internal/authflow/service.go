// Package authflow runs the OAuth2 authorization-code flow against
// Eventbrite: produce the authorize redirect, then exchange the returned
// code for an access token. The token is handed straight back to the
// caller and never stored.
package authflow

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

// ErrTokenExchange covers every way the code-for-token exchange can fail:
// network trouble, an invalid code, an expired code. The caller cannot
// tell them apart, so neither do we.
var ErrTokenExchange = errors.New("token exchange failed")

type Service struct {
	oauth *oauth2.Config
}

func NewService(clientID, clientSecret, authorizeURL, tokenURL, redirectURL string) *Service {
	return &Service{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authorizeURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
			RedirectURL: redirectURL,
		},
	}
}

// AuthorizeURL builds the provider URL the client is redirected to, with
// response_type=code and the fixed callback URL.
func (s *Service) AuthorizeURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// Exchange swaps an authorization code for an access token via a POST to
// the provider's token endpoint, using the same callback URL as the
// authorize step.
func (s *Service) Exchange(ctx context.Context, code string) (string, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	return token.AccessToken, nil
}
