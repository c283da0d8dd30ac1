package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-fitbit-client/auth"
	apperrors "github.com/jrsteele09/go-fitbit-client/internal/errors"
	"github.com/jrsteele09/go-fitbit-client/oauthmodel"
	"github.com/jrsteele09/go-fitbit-client/token"
	"github.com/jrsteele09/go-fitbit-client/token/filerepo"
	"github.com/stretchr/testify/require"
)

const (
	testClientID     = "23ABCD"
	testClientSecret = "client-secret"
	testState        = "abc123"
)

// browserVisit is what the fake browser saw after following the redirect
type browserVisit struct {
	authorizationURL string
	status           int
	body             string
	err              error
}

// handshakeFixture binds a loopback listener and replaces the browser with a
// function that requests the callback with chosen query parameters.
type handshakeFixture struct {
	t           *testing.T
	listener    net.Listener
	redirectURI string

	mu        sync.Mutex
	exchanges []string
	visit     browserVisit
	visited   chan struct{}
}

func setupHandshakeFixture(t *testing.T) *handshakeFixture {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return &handshakeFixture{
		t:           t,
		listener:    l,
		redirectURI: "http://" + l.Addr().String() + "/",
		visited:     make(chan struct{}),
	}
}

// browser returns an opener that sends the user back with the given query
func (f *handshakeFixture) browser(query url.Values) func(string) error {
	return func(authorizationURL string) error {
		go func() {
			defer close(f.visited)
			visit := browserVisit{authorizationURL: authorizationURL}
			resp, err := http.Get(f.redirectURI + "?" + query.Encode())
			if err != nil {
				visit.err = err
			} else {
				body, _ := io.ReadAll(resp.Body)
				_ = resp.Body.Close()
				visit.status = resp.StatusCode
				visit.body = string(body)
			}
			f.mu.Lock()
			f.visit = visit
			f.mu.Unlock()
		}()
		return nil
	}
}

func (f *handshakeFixture) exchanger(record *oauthmodel.TokenRecord, err error) auth.Exchanger {
	return auth.ExchangerFunc(func(ctx context.Context, code string) (*oauthmodel.TokenRecord, error) {
		f.mu.Lock()
		f.exchanges = append(f.exchanges, code)
		f.mu.Unlock()
		return record, err
	})
}

func (f *handshakeFixture) newHandshake(opts ...auth.HandshakeOption) *auth.Handshake {
	f.t.Helper()
	cfg := auth.HandshakeConfig{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		RedirectURI:  f.redirectURI,
		AuthURL:      "https://www.fitbit.com/oauth2/authorize",
		TokenURL:     "https://api.fitbit.com/oauth2/token",
		Scopes:       []string{"activity", "sleep"},
	}
	base := []auth.HandshakeOption{
		auth.WithListener(f.listener),
		auth.WithStateGenerator(func() (string, error) { return testState, nil }),
		auth.WithBrowserDelay(0),
		auth.WithShutdownDelay(10 * time.Millisecond),
	}
	h, err := auth.NewHandshake(cfg, append(base, opts...)...)
	require.NoError(f.t, err)
	return h
}

func (f *handshakeFixture) waitForVisit() browserVisit {
	f.t.Helper()
	select {
	case <-f.visited:
	case <-time.After(5 * time.Second):
		f.t.Fatal("browser never completed the callback request")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NoError(f.t, f.visit.err)
	return f.visit
}

func (f *handshakeFixture) exchangeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.exchanges)
}

func validRecord() *oauthmodel.TokenRecord {
	return &oauthmodel.TokenRecord{
		AccessToken:  "access-from-code",
		RefreshToken: "refresh-from-code",
		ExpiresIn:    28800,
		TokenType:    "Bearer",
		Scope:        "activity sleep",
		UserID:       "ABC12D",
	}
}

func TestBegin_StateMismatchRejectedWithoutExchange(t *testing.T) {
	f := setupHandshakeFixture(t)
	h := f.newHandshake(
		auth.WithBrowserOpener(f.browser(url.Values{"code": {"anything"}, "state": {"xyz999"}})),
		auth.WithExchanger(f.exchanger(validRecord(), nil)),
	)

	record, err := h.Begin(context.Background())

	require.Nil(t, record)
	require.ErrorIs(t, err, apperrors.ErrStateMismatch)
	var callbackErr *auth.CallbackError
	require.True(t, errors.As(err, &callbackErr))
	require.Equal(t, "CSRF Warning! Mismatching state", callbackErr.Message)
	require.Equal(t, 0, f.exchangeCount())

	visit := f.waitForVisit()
	require.Equal(t, http.StatusOK, visit.status)
	require.Contains(t, visit.body, "Mismatching state")
}

func TestBegin_MissingCodeFailsAndReturns(t *testing.T) {
	f := setupHandshakeFixture(t)
	h := f.newHandshake(
		auth.WithBrowserOpener(f.browser(url.Values{"state": {testState}})),
		auth.WithExchanger(f.exchanger(validRecord(), nil)),
	)

	_, err := h.Begin(context.Background())

	require.ErrorIs(t, err, apperrors.ErrAuthorization)
	require.Equal(t, 0, f.exchangeCount())
	visit := f.waitForVisit()
	require.Contains(t, visit.body, "Unknown error while authenticating")
}

func TestBegin_ProviderDeniedAccess(t *testing.T) {
	f := setupHandshakeFixture(t)
	h := f.newHandshake(
		auth.WithBrowserOpener(f.browser(url.Values{"error": {"access_denied"}, "state": {testState}})),
		auth.WithExchanger(f.exchanger(validRecord(), nil)),
	)

	_, err := h.Begin(context.Background())

	require.ErrorIs(t, err, apperrors.ErrAuthorization)
	require.Contains(t, err.Error(), "access_denied")
}

func TestBegin_ExchangeFailure(t *testing.T) {
	f := setupHandshakeFixture(t)
	h := f.newHandshake(
		auth.WithBrowserOpener(f.browser(url.Values{"code": {"validcode"}, "state": {testState}})),
		auth.WithExchanger(f.exchanger(nil, errors.New("invalid_client"))),
	)

	_, err := h.Begin(context.Background())

	require.ErrorIs(t, err, apperrors.ErrTokenExchange)
	visit := f.waitForVisit()
	require.Contains(t, visit.body, "Missing access token parameter.")
	require.Contains(t, visit.body, "correct client_secret")
	require.Contains(t, visit.body, "invalid_client")
}

func TestBegin_EmptyTokenIsExchangeFailure(t *testing.T) {
	f := setupHandshakeFixture(t)
	h := f.newHandshake(
		auth.WithBrowserOpener(f.browser(url.Values{"code": {"validcode"}, "state": {testState}})),
		auth.WithExchanger(f.exchanger(&oauthmodel.TokenRecord{}, nil)),
	)

	_, err := h.Begin(context.Background())

	require.ErrorIs(t, err, apperrors.ErrTokenExchange)
}

func TestBegin_ExchangePanicIsReported(t *testing.T) {
	f := setupHandshakeFixture(t)
	panicking := auth.ExchangerFunc(func(ctx context.Context, code string) (*oauthmodel.TokenRecord, error) {
		panic("exchange blew up")
	})
	h := f.newHandshake(
		auth.WithBrowserOpener(f.browser(url.Values{"code": {"validcode"}, "state": {testState}})),
		auth.WithExchanger(panicking),
	)

	_, err := h.Begin(context.Background())

	require.ErrorIs(t, err, apperrors.ErrAuthorization)
	visit := f.waitForVisit()
	require.Equal(t, http.StatusOK, visit.status)
	require.Contains(t, visit.body, "Unexpected error while authenticating")
	require.Contains(t, visit.body, "goroutine")
}

func TestBegin_SuccessPersistsThroughManager(t *testing.T) {
	f := setupHandshakeFixture(t)
	h := f.newHandshake(
		auth.WithBrowserOpener(f.browser(url.Values{"code": {"validcode"}, "state": {testState}})),
		auth.WithExchanger(f.exchanger(validRecord(), nil)),
	)
	path := filepath.Join(t.TempDir(), "token.json")
	m := token.NewManager(filerepo.New(path), token.RefreshConfig{ClientID: testClientID}, token.WithAuthorizer(h))

	accessToken, err := m.AccessToken(context.Background())

	require.NoError(t, err)
	require.Equal(t, "access-from-code", accessToken)
	require.Equal(t, []string{"validcode"}, f.exchanges)

	visit := f.waitForVisit()
	require.Contains(t, visit.body, "You are now authorized to access the Fitbit API!")

	persisted, err := filerepo.New(path).Load()
	require.NoError(t, err)
	require.Equal(t, validRecord(), persisted)
}

func TestBegin_AuthorizationURL(t *testing.T) {
	f := setupHandshakeFixture(t)
	h := f.newHandshake(
		auth.WithBrowserOpener(f.browser(url.Values{"code": {"validcode"}, "state": {testState}})),
		auth.WithExchanger(f.exchanger(validRecord(), nil)),
	)

	_, err := h.Begin(context.Background())
	require.NoError(t, err)

	visit := f.waitForVisit()
	u, err := url.Parse(visit.authorizationURL)
	require.NoError(t, err)
	require.Equal(t, "www.fitbit.com", u.Host)
	require.Equal(t, "/oauth2/authorize", u.Path)
	q := u.Query()
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, testClientID, q.Get("client_id"))
	require.Equal(t, f.redirectURI, q.Get("redirect_uri"))
	require.Equal(t, "activity sleep", q.Get("scope"))
	require.Equal(t, testState, q.Get("state"))
}

func TestBegin_ContextCancelStopsListener(t *testing.T) {
	f := setupHandshakeFixture(t)
	h := f.newHandshake(
		auth.WithBrowserOpener(func(string) error { return nil }),
		auth.WithExchanger(f.exchanger(validRecord(), nil)),
	)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := h.Begin(ctx)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	_, dialErr := net.DialTimeout("tcp", f.listener.Addr().String(), time.Second)
	require.Error(t, dialErr, "listener should be closed")
}

func TestBegin_DefaultExchangerPostsCode(t *testing.T) {
	var form url.Values
	var clientID string
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		clientID, _, _ = r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "a",
			"refresh_token": "r",
			"expires_in":    28800,
			"token_type":    "Bearer",
			"scope":         "activity",
			"user_id":       "ABC12D",
		})
	}))
	defer tokenServer.Close()

	f := setupHandshakeFixture(t)
	h, err := auth.NewHandshake(auth.HandshakeConfig{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		RedirectURI:  f.redirectURI,
		AuthURL:      tokenServer.URL + "/authorize",
		TokenURL:     tokenServer.URL + "/token",
	},
		auth.WithListener(f.listener),
		auth.WithStateGenerator(func() (string, error) { return testState, nil }),
		auth.WithBrowserDelay(0),
		auth.WithShutdownDelay(10*time.Millisecond),
		auth.WithBrowserOpener(f.browser(url.Values{"code": {"validcode"}, "state": {testState}})),
	)
	require.NoError(t, err)

	record, err := h.Begin(context.Background())

	require.NoError(t, err)
	require.Equal(t, 28800, record.ExpiresIn)
	require.Equal(t, "ABC12D", record.UserID)
	require.Equal(t, "authorization_code", form.Get("grant_type"))
	require.Equal(t, "validcode", form.Get("code"))
	require.Equal(t, testClientID, clientID)
}

func TestNewHandshake_Validation(t *testing.T) {
	_, err := auth.NewHandshake(auth.HandshakeConfig{RedirectURI: "http://127.0.0.1:8080/"})
	require.Error(t, err)

	_, err = auth.NewHandshake(auth.HandshakeConfig{ClientID: testClientID, RedirectURI: "not a url"})
	require.Error(t, err)
}
