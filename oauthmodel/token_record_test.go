package oauthmodel_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-fitbit-client/internal/errors"
	"github.com/jrsteele09/go-fitbit-client/oauthmodel"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestTokenRecord_ExpiresInDecoding(t *testing.T) {
	tests := []struct {
		name string
		json string
		want int
	}{
		{"number", `{"expires_in":28800}`, 28800},
		{"numeric string", `{"expires_in":"3600"}`, 3600},
		{"garbage string", `{"expires_in":"soon"}`, 0},
		{"null", `{"expires_in":null}`, 0},
		{"missing", `{}`, 0},
		{"object", `{"expires_in":{"seconds":5}}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var record oauthmodel.TokenRecord
			require.NoError(t, json.Unmarshal([]byte(tt.json), &record))
			require.Equal(t, tt.want, record.ExpiresIn)
		})
	}
}

func TestTokenRecord_DecodesAllFields(t *testing.T) {
	body := `{"access_token":"a","refresh_token":"r","expires_in":28800,"token_type":"Bearer","scope":"sleep profile","user_id":"ABC12D"}`

	var record oauthmodel.TokenRecord
	require.NoError(t, json.Unmarshal([]byte(body), &record))

	require.Equal(t, oauthmodel.TokenRecord{
		AccessToken:  "a",
		RefreshToken: "r",
		ExpiresIn:    28800,
		TokenType:    "Bearer",
		Scope:        "sleep profile",
		UserID:       "ABC12D",
	}, record)
}

func TestTokenRecord_Validate(t *testing.T) {
	var nilRecord *oauthmodel.TokenRecord
	require.ErrorIs(t, nilRecord.Validate(), apperrors.ErrInvalidToken)
	require.ErrorIs(t, (&oauthmodel.TokenRecord{RefreshToken: "r"}).Validate(), apperrors.ErrInvalidToken)
	require.ErrorIs(t, (&oauthmodel.TokenRecord{AccessToken: "a"}).Validate(), apperrors.ErrInvalidToken)
	require.NoError(t, (&oauthmodel.TokenRecord{AccessToken: "a", RefreshToken: "r"}).Validate())
}

func TestTokenRecord_ExpiresAtIsRelativeToAcquisition(t *testing.T) {
	acquiredAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	record := oauthmodel.TokenRecord{ExpiresIn: 28800}

	require.Equal(t, time.Date(2024, 5, 1, 16, 0, 0, 0, time.UTC), record.ExpiresAt(acquiredAt))
}

func TestTokenRecord_SubjectFromJWT(t *testing.T) {
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    "7QXYZ9",
		"scopes": "ract rhr",
	}).SignedString([]byte("provider-key"))
	require.NoError(t, err)

	record := oauthmodel.TokenRecord{AccessToken: accessToken, UserID: "ignored"}

	require.Equal(t, "7QXYZ9", record.Subject())
}

func TestTokenRecord_SubjectFallsBackToUserID(t *testing.T) {
	record := oauthmodel.TokenRecord{AccessToken: "opaque", UserID: "ABC12D"}

	require.Equal(t, "ABC12D", record.Subject())
}

func TestFromOAuth2Token(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	tok := (&oauth2.Token{
		AccessToken:  "a",
		RefreshToken: "r",
		TokenType:    "Bearer",
		Expiry:       now.Add(time.Hour),
	}).WithExtra(map[string]any{
		"expires_in": float64(28800),
		"scope":      "activity",
		"user_id":    "ABC12D",
	})

	record := oauthmodel.FromOAuth2Token(tok, now)

	require.Equal(t, 28800, record.ExpiresIn)
	require.Equal(t, "activity", record.Scope)
	require.Equal(t, "ABC12D", record.UserID)
	require.NoError(t, record.Validate())
}

func TestFromOAuth2Token_ExpiryOnly(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	tok := &oauth2.Token{AccessToken: "a", RefreshToken: "r", Expiry: now.Add(time.Hour)}

	record := oauthmodel.FromOAuth2Token(tok, now)

	require.Equal(t, 3600, record.ExpiresIn)
	require.Equal(t, now.Add(time.Hour), record.OAuth2Token(now).Expiry)
}
