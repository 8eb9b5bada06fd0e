package services

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// NewHTTPClient returns the client used to reach the backend.
//
// With a non-empty token every request carries "Authorization: Bearer <token>" via a static
// [oauth2.TokenSource]; otherwise [http.DefaultClient] is returned.
func NewHTTPClient(ctx context.Context, token string) *http.Client {
	if token == "" {
		return http.DefaultClient
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return oauth2.NewClient(ctx, src)
}
