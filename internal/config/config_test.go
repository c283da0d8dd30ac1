package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-fitbit-client/internal/config"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	for _, name := range []string{
		"FITBIT_AUTH_URL", "FITBIT_TOKEN_URL", "FITBIT_REDIRECT_URI", "FITBIT_SCOPES",
		"FITBIT_TOKEN_FILE", "FITBIT_API_URL", "PORT", "HTTP_TIMEOUT", "LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}
	c := config.New()

	require.Equal(t, "https://www.fitbit.com/oauth2/authorize", c.GetAuthURL())
	require.Equal(t, "https://api.fitbit.com/oauth2/token", c.GetTokenURL())
	require.Equal(t, "http://127.0.0.1:8080/", c.GetRedirectURI())
	require.Equal(t, config.DefaultScopes, c.GetScopes())
	require.Equal(t, "token.json", c.GetTokenFile())
	require.Equal(t, "https://api.fitbit.com", c.GetAPIURL())
	require.Equal(t, ":5000", c.GetPort())
	require.Equal(t, 30*time.Second, c.GetHTTPTimeout())
	require.Equal(t, "info", c.GetLogLevel())
}

func TestConfig_FromEnvironment(t *testing.T) {
	t.Setenv("FITBIT_CLIENT_ID", "23ABCD")
	t.Setenv("FITBIT_CLIENT_SECRET", "shh")
	t.Setenv("FITBIT_SCOPES", "activity, sleep profile")
	t.Setenv("PORT", "8443")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("FITBIT_VERIFY_CODE", "verify-me")
	c := config.New()

	require.Equal(t, "23ABCD", c.GetClientID())
	require.Equal(t, "shh", c.GetClientSecret())
	require.Equal(t, []string{"activity", "sleep", "profile"}, c.GetScopes())
	require.Equal(t, ":8443", c.GetPort())
	require.Equal(t, 5*time.Second, c.GetHTTPTimeout())
	require.Equal(t, "verify-me", c.GetVerifyCode())
}

func TestConfig_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")

	require.Equal(t, 30*time.Second, config.New().GetHTTPTimeout())
}
