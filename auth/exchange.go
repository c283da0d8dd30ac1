package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/jrsteele09/go-fitbit-client/oauthmodel"
	"golang.org/x/oauth2"
)

// Exchanger trades an authorization code for a token record
type Exchanger interface {
	Exchange(ctx context.Context, code string) (*oauthmodel.TokenRecord, error)
}

// ExchangerFunc adapts a function to the Exchanger interface
type ExchangerFunc func(ctx context.Context, code string) (*oauthmodel.TokenRecord, error)

func (f ExchangerFunc) Exchange(ctx context.Context, code string) (*oauthmodel.TokenRecord, error) {
	return f(ctx, code)
}

type oauth2Exchanger struct {
	config     *oauth2.Config
	httpClient *http.Client
	nowFunc    func() time.Time
}

func (e *oauth2Exchanger) Exchange(ctx context.Context, code string) (*oauthmodel.TokenRecord, error) {
	if e.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)
	}
	tok, err := e.config.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	return oauthmodel.FromOAuth2Token(tok, e.nowFunc()), nil
}
