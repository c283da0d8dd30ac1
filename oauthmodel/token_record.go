package oauthmodel

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-fitbit-client/internal/errors"
	"golang.org/x/oauth2"
)

// TokenRecord is the token endpoint response and the persisted token file.
// The same JSON shape is returned by the authorization_code and refresh_token grants.
type TokenRecord struct {
	// AccessToken authorizes Web API requests.
	// Example: "eyJhbGciOiJIUzI1NiJ9..."
	// Usage: Authorization: Bearer <access_token>
	// Lifespan: expires_in seconds after it was issued (8 hours by default)
	AccessToken string `json:"access_token"`

	// RefreshToken obtains a new record without prompting the user again.
	// Example: "c1a9d2f0b7..."
	// Usage: Sent to the token endpoint with grant_type=refresh_token
	// Security: Single use, every refresh returns a new one
	RefreshToken string `json:"refresh_token"`

	// ExpiresIn is the access token lifetime in seconds, relative to issue time.
	// Example: 28800
	// Note: A missing or malformed value decodes to 0, which reads as already expired
	ExpiresIn int `json:"expires_in"`

	// TokenType is always "Bearer" for Fitbit.
	TokenType string `json:"token_type"`

	// Scope is the space separated list of scopes the user granted.
	// Example: "activity heartrate sleep profile"
	// Note: May be narrower than what was requested
	Scope string `json:"scope"`

	// UserID is the encoded Fitbit user id the token belongs to.
	// Example: "ABC12D"
	UserID string `json:"user_id,omitempty"`
}

// UnmarshalJSON accepts expires_in as a number or a numeric string. Anything
// else leaves ExpiresIn at zero instead of failing the whole record.
func (t *TokenRecord) UnmarshalJSON(data []byte) error {
	type plain TokenRecord
	var raw struct {
		plain
		ExpiresIn json.RawMessage `json:"expires_in"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = TokenRecord(raw.plain)
	t.ExpiresIn = parseExpiresIn(raw.ExpiresIn)
	return nil
}

func parseExpiresIn(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return 0
}

// Validate enforces that a record is fit to be persisted
func (t *TokenRecord) Validate() error {
	if t == nil {
		return apperrors.Wrapf(apperrors.ErrInvalidToken, "nil token record")
	}
	if t.AccessToken == "" {
		return apperrors.Wrapf(apperrors.ErrInvalidToken, "missing access_token")
	}
	if t.RefreshToken == "" {
		return apperrors.Wrapf(apperrors.ErrInvalidToken, "missing refresh_token")
	}
	return nil
}

// ExpiresAt derives the absolute expiry from the time the record was acquired
func (t *TokenRecord) ExpiresAt(acquiredAt time.Time) time.Time {
	return acquiredAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// Subject returns the user the access token was issued to. Fitbit access tokens
// are JWTs; the signature is not checked because the client only reads its own token.
func (t *TokenRecord) Subject() string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t.AccessToken, claims); err == nil {
		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			return sub
		}
	}
	return t.UserID
}

// OAuth2Token converts the record for use as an oauth2.TokenSource result
func (t *TokenRecord) OAuth2Token(acquiredAt time.Time) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       t.ExpiresAt(acquiredAt),
		ExpiresIn:    int64(t.ExpiresIn),
	}
}

// FromOAuth2Token converts the result of an authorization code exchange
func FromOAuth2Token(tok *oauth2.Token, now time.Time) *TokenRecord {
	if tok == nil {
		return nil
	}
	rec := &TokenRecord{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		ExpiresIn:    int(tok.ExpiresIn),
	}
	if rec.ExpiresIn == 0 {
		rec.ExpiresIn = extraInt(tok.Extra("expires_in"))
	}
	if rec.ExpiresIn == 0 && !tok.Expiry.IsZero() {
		rec.ExpiresIn = int(tok.Expiry.Sub(now).Seconds())
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		rec.Scope = scope
	}
	if userID, ok := tok.Extra("user_id").(string); ok {
		rec.UserID = userID
	}
	return rec
}

func extraInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	}
	return 0
}
