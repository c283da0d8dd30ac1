package oauthmodel

// ResponseType represents the OAuth 2.0 response type.
// Determines what is returned from the authorization endpoint.
type ResponseType string

const (
	// CodeResponseType indicates the authorization code flow.
	// Used in: the browser handshake, the only flow this client performs.
	// Returns an authorization code that is exchanged for tokens at the token endpoint.
	// Example: https://www.fitbit.com/oauth2/authorize?response_type=code&client_id=...
	CodeResponseType ResponseType = "code"
)

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
// Determines what credentials are required to obtain tokens.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for tokens.
	// Used in: the handshake callback, once per authorization
	// Token request includes: code, client_id, redirect_uri (and Basic client credentials)
	// Returns: access_token, refresh_token, expires_in, scope, user_id
	AuthorizationCodeGrant GrantType = "authorization_code"

	// RefreshTokenGrant exchanges a refresh token for new tokens.
	// Used in: token refresh when the held access token has expired
	// Token request includes: refresh_token, client_id
	// Returns: a complete new token record; the refresh token is rotated
	RefreshTokenGrant GrantType = "refresh_token"
)

func (g GrantType) String() string {
	return string(g)
}
