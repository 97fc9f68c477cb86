// internal/identity/google.go

// Package identity wraps the external identity provider behind a narrow
// interface so the auth flow stays a passthrough collaborator.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/minicrm/campaign-backend/internal/config"
	appErrors "github.com/minicrm/campaign-backend/internal/errors"
)

// Profile is the identity shape the rest of the system cares about.
type Profile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// Provider exchanges an OAuth authorization code for a profile.
type Provider interface {
	Exchange(ctx context.Context, code string) (*Profile, error)
}

const userinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

type GoogleProvider struct {
	oauth *oauth2.Config
}

func NewGoogleProvider(cfg *config.GoogleConfig) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// Exchange trades the code for tokens and fetches the userinfo profile.
// Every upstream failure maps to UpstreamAuthError, which the HTTP layer
// surfaces as 401.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, appErrors.NewUpstreamAuth(err)
	}

	resp, err := p.oauth.Client(ctx, token).Get(userinfoURL)
	if err != nil {
		return nil, appErrors.NewUpstreamAuth(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, appErrors.NewUpstreamAuth(fmt.Errorf("userinfo returned %d", resp.StatusCode))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, appErrors.NewUpstreamAuth(err)
	}
	if profile.Email == "" {
		return nil, appErrors.NewUpstreamAuth(fmt.Errorf("userinfo payload missing email"))
	}
	return &profile, nil
}

var _ Provider = (*GoogleProvider)(nil)
