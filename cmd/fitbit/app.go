package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jrsteele09/go-fitbit-client/auth"
	"github.com/jrsteele09/go-fitbit-client/fitbit"
	"github.com/jrsteele09/go-fitbit-client/internal/config"
	"github.com/jrsteele09/go-fitbit-client/token"
	"github.com/jrsteele09/go-fitbit-client/token/filerepo"
)

// app wires the handshake, token manager and API client from configuration
type app struct {
	handshake *auth.Handshake
	manager   *token.Manager
	client    *fitbit.Client
}

func newApp(cfg config.Config) (*app, error) {
	if cfg.GetClientID() == "" {
		return nil, errors.New("FITBIT_CLIENT_ID is not set")
	}
	httpClient := &http.Client{Timeout: cfg.GetHTTPTimeout()}

	handshake, err := auth.NewHandshake(auth.HandshakeConfig{
		ClientID:     cfg.GetClientID(),
		ClientSecret: cfg.GetClientSecret(),
		RedirectURI:  cfg.GetRedirectURI(),
		AuthURL:      cfg.GetAuthURL(),
		TokenURL:     cfg.GetTokenURL(),
		Scopes:       cfg.GetScopes(),
	}, auth.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}

	manager := token.NewManager(
		filerepo.New(cfg.GetTokenFile()),
		token.RefreshConfig{
			ClientID:      cfg.GetClientID(),
			ClientSecret:  cfg.GetClientSecret(),
			TokenURL:      cfg.GetTokenURL(),
			RevokeURL:     cfg.GetRevokeURL(),
			IntrospectURL: cfg.GetIntrospectURL(),
		},
		token.WithAuthorizer(handshake),
		token.WithHTTPClient(httpClient),
	)

	client := fitbit.NewClient(manager,
		fitbit.WithBaseURL(cfg.GetAPIURL()),
		fitbit.WithHTTPClient(httpClient),
		fitbit.WithSubscriberID(cfg.GetSubscriberID()),
	)
	return &app{handshake: handshake, manager: manager, client: client}, nil
}

// withApp runs fn with a context cancelled on SIGINT or SIGTERM. The token
// is loaded first so a missing token starts the browser handshake.
func withApp(fn func(ctx context.Context, a *app) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(options.settings())
	if err != nil {
		return err
	}
	if _, err := a.manager.Load(ctx); err != nil {
		return err
	}
	return fn(ctx, a)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
