package main

import (
	"github.com/jrsteele09/go-fitbit-client/internal/config"
)

// Options is the root command. Flags left empty fall back to the environment.
type Options struct {
	TokenFile   string `long:"token-file" description:"token file path (FITBIT_TOKEN_FILE)"`
	RedirectURI string `long:"redirect-uri" description:"OAuth2 redirect URI, also the local listen address (FITBIT_REDIRECT_URI)"`
	LogLevel    string `short:"l" long:"log-level" description:"debug, info, warn or error (LOG_LEVEL)"`
	Quiet       bool   `short:"q" long:"quiet" description:"do not print the banner"`

	Login         LoginCmd         `command:"login" description:"Authorize in the browser and save the token"`
	Refresh       RefreshCmd       `command:"refresh" description:"Refresh the saved token now"`
	Introspect    IntrospectCmd    `command:"introspect" description:"Ask Fitbit whether the saved token is active"`
	Revoke        RevokeCmd        `command:"revoke" description:"Revoke the saved token"`
	Profile       ProfileCmd       `command:"profile" description:"Print the user profile"`
	Devices       DevicesCmd       `command:"devices" description:"List paired devices"`
	Alarms        AlarmsCmd        `command:"alarms" description:"List the alarms of a tracker"`
	Activity      ActivityCmd      `command:"activity" description:"Print the daily activity summary"`
	Sleep         SleepCmd         `command:"sleep" description:"Print the sleep log of a day"`
	Subscribe     SubscribeCmd     `command:"subscribe" description:"Create a notification subscription"`
	Subscriptions SubscriptionsCmd `command:"subscriptions" description:"List notification subscriptions"`
	Unsubscribe   UnsubscribeCmd   `command:"unsubscribe" description:"Delete a notification subscription"`
}

var options Options

func (o *Options) logLevel() string {
	if o.LogLevel != "" {
		return o.LogLevel
	}
	return config.New().GetLogLevel()
}

func (o *Options) settings() config.Config {
	return settings{Config: config.New(), tokenFile: o.TokenFile, redirectURI: o.RedirectURI}
}

// settings lets command line flags take precedence over the environment
type settings struct {
	config.Config
	tokenFile   string
	redirectURI string
}

func (s settings) GetTokenFile() string {
	if s.tokenFile != "" {
		return s.tokenFile
	}
	return s.Config.GetTokenFile()
}

func (s settings) GetRedirectURI() string {
	if s.redirectURI != "" {
		return s.redirectURI
	}
	return s.Config.GetRedirectURI()
}
