// SPDX-License-Identifier: AGPL-3.0-only
package authhelp

import (
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/oauth2"
)

var TwitterEndpoint = oauth2.Endpoint{
	AuthURL:   "https://twitter.com/i/oauth2/authorize",
	TokenURL:  "https://api.twitter.com/2/oauth2/token",
	AuthStyle: oauth2.AuthStyleInHeader,
}

var TwitterScopes = []string{"tweet.read", "users.read", "offline.access"}

func GenerateTwitterConfig(clientID, clientSecret, callbackURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  callbackURL,
		Scopes:       TwitterScopes,
		Endpoint:     TwitterEndpoint,
	}
}

// GenerateState returns a URL-safe random value for the OAuth state parameter.
func GenerateState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
