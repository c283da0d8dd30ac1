// Package server receives Fitbit subscription notifications.
package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-fitbit-client/internal/config"
	"github.com/rs/zerolog/log"
)

type Server struct {
	mux          *http.ServeMux
	routes       []string
	verifyCode   string
	clientSecret string
	sink         NotificationSink
}

// New builds the webhook handler. A nil sink logs every notification.
func New(cfg config.SubscriberConfig, sink NotificationSink) *Server {
	if sink == nil {
		sink = LogSink{}
	}
	s := &Server{
		mux:          http.NewServeMux(),
		verifyCode:   cfg.GetVerifyCode(),
		clientSecret: cfg.GetClientSecret(),
		sink:         sink,
	}
	if s.verifyCode == "" {
		log.Warn().Msg("No subscriber verification code configured, verification requests will be rejected")
	}

	s.initRoutes()
	s.logRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes lists the registered patterns in registration order
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Debug().Msgf("[%-19s] %s", colouredMethod(method), path)
}

func colouredMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}
