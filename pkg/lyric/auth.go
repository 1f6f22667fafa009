package lyric

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// NewOAuth2Client returns an http.Client that authenticates against the
// Honeywell Home API with the provided client credentials and refresh token,
// renewing the access token as needed.
//
// The refresh token must be obtained once through the vendor's
// authorization-code flow; the Honeywell developer portal documents the
// procedure.
func NewOAuth2Client(ctx context.Context, clientID, clientSecret, refreshToken string) *http.Client {
	cfg := oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  ServerURL + "/oauth2/authorize",
			TokenURL: ServerURL + "/oauth2/token",
		},
	}
	return cfg.Client(ctx, &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Minute),
	})
}
