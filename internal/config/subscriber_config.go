package config

import "fmt"

const (
	portEnvVar    = "PORT"
	verifyCodeVar = "FITBIT_VERIFY_CODE"
)

type SubscriberConfig interface {
	GetPort() string
	GetVerifyCode() string
	GetClientSecret() string
}

type Subscriber struct{}

func (Subscriber) GetPort() string {
	port := GetEnv(portEnvVar, "5000")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

// GetVerifyCode is the subscriber verification code shown in the Fitbit developer console
func (Subscriber) GetVerifyCode() string {
	return GetEnv(verifyCodeVar, "")
}
