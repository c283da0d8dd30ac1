package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/go-fitbit-client/internal/errors"
	"github.com/jrsteele09/go-fitbit-client/oauthmodel"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	stateLength          = 32
	defaultBrowserDelay  = 1 * time.Second
	defaultShutdownDelay = 1 * time.Second
	shutdownTimeout      = 5 * time.Second
)

// HandshakeConfig describes the registered application and the provider endpoints
type HandshakeConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthURL      string
	TokenURL     string
	Scopes       []string
}

// authorizationState lives for a single handshake attempt
type authorizationState struct {
	state            string
	authorizationURL string
}

// Handshake runs the OAuth2 authorization code grant against a one-shot
// listener on the redirect URI.
type Handshake struct {
	config        HandshakeConfig
	oauthConfig   *oauth2.Config
	redirect      *url.URL
	exchanger     Exchanger
	openBrowser   func(string) error
	newState      func() (string, error)
	listener      net.Listener
	httpClient    *http.Client
	browserDelay  time.Duration
	shutdownDelay time.Duration
	nowFunc       func() time.Time
}

type HandshakeOption func(*Handshake)

// WithBrowserOpener replaces the system browser launcher
func WithBrowserOpener(open func(string) error) HandshakeOption {
	return func(h *Handshake) {
		h.openBrowser = open
	}
}

// WithExchanger replaces the code-for-token exchange
func WithExchanger(exchanger Exchanger) HandshakeOption {
	return func(h *Handshake) {
		h.exchanger = exchanger
	}
}

func WithBrowserDelay(d time.Duration) HandshakeOption {
	return func(h *Handshake) {
		h.browserDelay = d
	}
}

func WithShutdownDelay(d time.Duration) HandshakeOption {
	return func(h *Handshake) {
		h.shutdownDelay = d
	}
}

func WithStateGenerator(gen func() (string, error)) HandshakeOption {
	return func(h *Handshake) {
		h.newState = gen
	}
}

// WithListener serves the callback on an already bound listener instead of
// binding the redirect URI's host and port.
func WithListener(l net.Listener) HandshakeOption {
	return func(h *Handshake) {
		h.listener = l
	}
}

// WithHTTPClient is used for the token exchange
func WithHTTPClient(client *http.Client) HandshakeOption {
	return func(h *Handshake) {
		h.httpClient = client
	}
}

func WithNowFunc(now func() time.Time) HandshakeOption {
	return func(h *Handshake) {
		h.nowFunc = now
	}
}

func NewHandshake(cfg HandshakeConfig, options ...HandshakeOption) (*Handshake, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("[auth NewHandshake] client id is required")
	}
	redirect, err := url.Parse(cfg.RedirectURI)
	if err != nil || redirect.Host == "" {
		return nil, fmt.Errorf("[auth NewHandshake] invalid redirect uri %q", cfg.RedirectURI)
	}

	h := &Handshake{
		config:   cfg,
		redirect: redirect,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		openBrowser:   OpenBrowser,
		newState:      generateState,
		browserDelay:  defaultBrowserDelay,
		shutdownDelay: defaultShutdownDelay,
	}

	for _, opt := range options {
		opt(h)
	}

	if h.nowFunc == nil {
		h.nowFunc = time.Now
	}
	if h.exchanger == nil {
		h.exchanger = &oauth2Exchanger{config: h.oauthConfig, httpClient: h.httpClient, nowFunc: h.nowFunc}
	}
	return h, nil
}

// Authorize lets a token.Manager run the handshake when nothing is persisted
func (h *Handshake) Authorize(ctx context.Context) (*oauthmodel.TokenRecord, error) {
	return h.Begin(ctx)
}

// Begin opens the consent page in the browser and blocks until the redirect
// has been handled and the listener has stopped. Cancelling ctx stops the
// listener early.
func (h *Handshake) Begin(ctx context.Context) (*oauthmodel.TokenRecord, error) {
	state, err := h.newState()
	if err != nil {
		return nil, fmt.Errorf("[Handshake Begin] failed to generate state: %w", err)
	}
	authState := &authorizationState{
		state:            state,
		authorizationURL: h.oauthConfig.AuthCodeURL(state),
	}

	listener := h.listener
	if listener == nil {
		listener, err = net.Listen("tcp", h.listenAddress())
		if err != nil {
			return nil, fmt.Errorf("[Handshake Begin] failed to listen on %s: %w", h.listenAddress(), err)
		}
	}

	server := &http.Server{ReadHeaderTimeout: 10 * time.Second}
	stopped := make(chan struct{})
	var stopOnce sync.Once
	stop := func() {
		stopOnce.Do(func() {
			go func() {
				defer close(stopped)
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					log.Err(err).Msg("Callback listener shutdown")
				}
			}()
		})
	}

	callback := newCallbackHandler(ctx, authState, h.exchanger, func() {
		time.AfterFunc(h.shutdownDelay, stop)
	})
	mux := http.NewServeMux()
	mux.Handle("GET "+callbackPattern(h.redirect.Path), callback)
	server.Handler = mux

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- server.Serve(listener)
	}()

	browser := time.AfterFunc(h.browserDelay, func() {
		if err := h.openBrowser(authState.authorizationURL); err != nil {
			log.Err(err).Str("url", authState.authorizationURL).Msg("Could not open the browser, visit the URL manually")
		}
	})
	defer browser.Stop()

	log.Info().Str("listen", listener.Addr().String()).Str("url", authState.authorizationURL).Msg("Waiting for authorization callback")

	var serveErr error
	select {
	case <-stopped:
		serveErr = <-serveDone
	case serveErr = <-serveDone:
		stop()
		<-stopped
	case <-ctx.Done():
		stop()
		<-stopped
		<-serveDone
		return nil, fmt.Errorf("[Handshake Begin] %w", ctx.Err())
	}

	out, handled := callback.result()
	if !handled {
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return nil, fmt.Errorf("[Handshake Begin] callback listener failed: %w", serveErr)
		}
		return nil, fmt.Errorf("[Handshake Begin] %w: listener stopped without a callback", apperrors.ErrAuthorization)
	}
	if out.err != nil {
		return nil, out.err
	}
	log.Info().Str("user", out.record.Subject()).Msg("Authorization complete")
	return out.record, nil
}

// AuthorizationURL builds the consent URL for the given state without starting a listener
func (h *Handshake) AuthorizationURL(state string) string {
	return h.oauthConfig.AuthCodeURL(state)
}

func (h *Handshake) listenAddress() string {
	port := h.redirect.Port()
	if port == "" {
		port = "80"
		if h.redirect.Scheme == "https" {
			port = "443"
		}
	}
	return net.JoinHostPort(h.redirect.Hostname(), port)
}

// callbackPattern matches the redirect path exactly, including a bare "/"
func callbackPattern(path string) string {
	if path == "" {
		path = "/"
	}
	if strings.HasSuffix(path, "/") {
		return path + "{$}"
	}
	return path
}

// generateState creates a random base64url string
func generateState() (string, error) {
	b := make([]byte, stateLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
