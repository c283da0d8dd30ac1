package token

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
)

// ErrRevokeNotConfigured is returned by Revoke without a RevokeURL
var ErrRevokeNotConfigured = errors.New("revoke url not configured")

// Revoke asks the provider to invalidate the held refresh token, which also
// ends every access token issued from it. The held record is dropped; the
// persisted copy stays until it is overwritten by the next authorization.
func (m *Manager) Revoke(ctx context.Context) error {
	if m.config.RevokeURL == "" {
		return fmt.Errorf("[Manager Revoke] %w", ErrRevokeNotConfigured)
	}
	current := m.Current()
	if current == nil {
		return fmt.Errorf("[Manager Revoke] no token loaded")
	}

	form := url.Values{}
	form.Set("token", current.RefreshToken)
	status, body, err := m.postForm(ctx, m.config.RevokeURL, form, m.setClientAuth)
	if err != nil {
		return fmt.Errorf("[Manager Revoke] %w", err)
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("[Manager Revoke] revocation failed with status %d: %s", status, body)
	}

	m.mu.Lock()
	m.record = nil
	m.mu.Unlock()

	log.Info().Str("user", current.Subject()).Msg("Token revoked")
	return nil
}
