package config

import "time"

type Config interface {
	EnvConfig
	FitbitConfig
	SubscriberConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetHTTPTimeout() time.Duration
}

type mainConfig struct {
	EnvVars
	Fitbit
	Subscriber
}

func New() Config {
	return mainConfig{}
}
