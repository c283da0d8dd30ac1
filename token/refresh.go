package token

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/jrsteele09/go-fitbit-client/internal/errors"
	"github.com/jrsteele09/go-fitbit-client/oauthmodel"
)

const maxTokenResponseSize = 1 << 20

// RefreshError reports a non-2xx answer from the token endpoint
type RefreshError struct {
	StatusCode int
	Body       string
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("token refresh failed with status %d: %s", e.StatusCode, e.Body)
}

func (e *RefreshError) Is(target error) bool {
	return target == apperrors.ErrRefresh
}

// RefreshConfig identifies the client at the provider's token endpoint
type RefreshConfig struct {
	ClientID      string
	ClientSecret  string
	TokenURL      string
	RevokeURL     string
	IntrospectURL string
}

func (m *Manager) requestRefresh(ctx context.Context, refreshToken string) (*oauthmodel.TokenRecord, error) {
	form := url.Values{}
	form.Set("grant_type", oauthmodel.RefreshTokenGrant.String())
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", m.config.ClientID)

	status, body, err := m.postForm(ctx, m.config.TokenURL, form, m.setClientAuth)
	if err != nil {
		return nil, fmt.Errorf("[Manager Refresh] %w: %w", apperrors.ErrRefresh, err)
	}
	if status < 200 || status > 299 {
		return nil, &RefreshError{StatusCode: status, Body: string(body)}
	}

	var record oauthmodel.TokenRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("[Manager Refresh] failed to parse token response: %w: %w", apperrors.ErrRefresh, err)
	}

	// Providers that do not rotate refresh tokens omit it from the response
	if record.RefreshToken == "" {
		record.RefreshToken = refreshToken
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("[Manager Refresh] %w: %w", apperrors.ErrRefresh, err)
	}
	return &record, nil
}

// setClientAuth authenticates the client with HTTP Basic when it has a secret
func (m *Manager) setClientAuth(req *http.Request) {
	if m.config.ClientSecret != "" {
		req.SetBasicAuth(m.config.ClientID, m.config.ClientSecret)
	}
}

// postForm sends a form encoded POST and returns the status and body
func (m *Manager) postForm(ctx context.Context, target string, form url.Values, authorize func(*http.Request)) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	authorize(req)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenResponseSize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}
