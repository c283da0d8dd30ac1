package config

import "strings"

const (
	clientIDVar     = "FITBIT_CLIENT_ID"
	clientSecretVar = "FITBIT_CLIENT_SECRET"
	authURLVar      = "FITBIT_AUTH_URL"
	tokenURLVar     = "FITBIT_TOKEN_URL"
	redirectURIVar  = "FITBIT_REDIRECT_URI"
	scopesVar       = "FITBIT_SCOPES"
	tokenFileVar    = "FITBIT_TOKEN_FILE"
	apiURLVar       = "FITBIT_API_URL"
	subscriberIDVar = "FITBIT_SUBSCRIBER_ID"
	revokeURLVar    = "FITBIT_REVOKE_URL"
	introspectVar   = "FITBIT_INTROSPECT_URL"
)

// DefaultScopes requests every scope the Web API offers
var DefaultScopes = []string{
	"activity",
	"cardio_fitness",
	"electrocardiogram",
	"heartrate",
	"irregular_rhythm_notifications",
	"location",
	"nutrition",
	"oxygen_saturation",
	"profile",
	"respiratory_rate",
	"settings",
	"sleep",
	"social",
	"temperature",
	"weight",
}

type FitbitConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetAuthURL() string
	GetTokenURL() string
	GetRedirectURI() string
	GetScopes() []string
	GetTokenFile() string
	GetAPIURL() string
	GetSubscriberID() string
	GetRevokeURL() string
	GetIntrospectURL() string
}

type Fitbit struct{}

var _ FitbitConfig = Fitbit{}

func (Fitbit) GetClientID() string {
	return GetEnv(clientIDVar, "")
}

func (Fitbit) GetClientSecret() string {
	return GetEnv(clientSecretVar, "")
}

func (Fitbit) GetAuthURL() string {
	return GetEnv(authURLVar, "https://www.fitbit.com/oauth2/authorize")
}

func (Fitbit) GetTokenURL() string {
	return GetEnv(tokenURLVar, "https://api.fitbit.com/oauth2/token")
}

// GetRedirectURI must match the callback URL registered with the Fitbit application
func (Fitbit) GetRedirectURI() string {
	return GetEnv(redirectURIVar, "http://127.0.0.1:8080/")
}

// GetScopes accepts a space or comma separated list
func (Fitbit) GetScopes() []string {
	raw := GetEnv(scopesVar, "")
	if raw == "" {
		return DefaultScopes
	}
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ','
	})
}

func (Fitbit) GetTokenFile() string {
	return GetEnv(tokenFileVar, "token.json")
}

func (Fitbit) GetAPIURL() string {
	return GetEnv(apiURLVar, "https://api.fitbit.com")
}

// GetSubscriberID selects one of several subscriber endpoints configured for the application
func (Fitbit) GetSubscriberID() string {
	return GetEnv(subscriberIDVar, "")
}

func (Fitbit) GetRevokeURL() string {
	return GetEnv(revokeURLVar, "https://api.fitbit.com/oauth2/revoke")
}

func (Fitbit) GetIntrospectURL() string {
	return GetEnv(introspectVar, "https://api.fitbit.com/1.1/oauth2/introspect")
}
