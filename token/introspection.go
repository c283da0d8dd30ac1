package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jrsteele09/go-fitbit-client/internal/utils"
)

// ErrIntrospectNotConfigured is returned by Introspect without an IntrospectURL
var ErrIntrospectNotConfigured = errors.New("introspect url not configured")

// TokenIntrospection is the provider's view of the held access token.
// When Active is false the other fields are not populated.
type TokenIntrospection struct {
	Active    bool    `json:"active"`
	Scope     *string `json:"scope,omitempty"`      // Granted scopes
	ClientID  *string `json:"client_id,omitempty"`  // Application the token was issued to
	UserID    *string `json:"user_id,omitempty"`    // Encoded Fitbit user id
	TokenType *string `json:"token_type,omitempty"` // "access_token"
	Exp       *int64  `json:"exp,omitempty"`        // Expiration, milliseconds since the epoch
	Iat       *int64  `json:"iat,omitempty"`        // Issued at, milliseconds since the epoch
}

// ExpiresAt returns the zero time when the provider did not report an expiry
func (ti *TokenIntrospection) ExpiresAt() time.Time {
	if ti.Exp == nil {
		return time.Time{}
	}
	return time.UnixMilli(utils.Value(ti.Exp))
}

// Introspect asks the provider whether the held access token is still active.
// The request itself is authorized with that same token.
func (m *Manager) Introspect(ctx context.Context) (*TokenIntrospection, error) {
	if m.config.IntrospectURL == "" {
		return nil, fmt.Errorf("[Manager Introspect] %w", ErrIntrospectNotConfigured)
	}
	accessToken, err := m.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("[Manager Introspect] %w", err)
	}

	form := url.Values{}
	form.Set("token", accessToken)
	status, body, err := m.postForm(ctx, m.config.IntrospectURL, form, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	})
	if err != nil {
		return nil, fmt.Errorf("[Manager Introspect] %w", err)
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("[Manager Introspect] introspection failed with status %d: %s", status, body)
	}

	var ti TokenIntrospection
	if err := json.Unmarshal(body, &ti); err != nil {
		return nil, fmt.Errorf("[Manager Introspect] failed to parse response: %w", err)
	}
	return &ti, nil
}
