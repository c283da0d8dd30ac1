package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"

	apperrors "github.com/jrsteele09/go-fitbit-client/internal/errors"
	"github.com/jrsteele09/go-fitbit-client/oauthmodel"
	"github.com/rs/zerolog/log"
)

const (
	msgUnknownError    = "Unknown error while authenticating"
	msgStateMismatch   = "CSRF Warning! Mismatching state"
	msgMissingToken    = "Missing access token parameter."
	hintMissingToken   = "Please check that you are using the correct client_secret"
	msgUnexpectedError = "Unexpected error while authenticating"
)

// CallbackError is the outcome of a failed callback. Message and Detail are
// what the browser is shown; Err carries the sentinel for errors.Is.
type CallbackError struct {
	Message string
	Hint    string
	Detail  string
	Err     error
}

func (e *CallbackError) Error() string {
	return e.Err.Error()
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}

type outcome struct {
	record *oauthmodel.TokenRecord
	err    error
}

// callbackHandler serves the redirect. Only the first request decides the
// outcome of the handshake; the state is consumed by it.
type callbackHandler struct {
	ctx       context.Context
	exchanger Exchanger
	onDone    func()

	mu       sync.Mutex
	state    *authorizationState
	out      outcome
	handled  bool
	doneOnce sync.Once
}

func newCallbackHandler(ctx context.Context, state *authorizationState, exchanger Exchanger, onDone func()) *callbackHandler {
	return &callbackHandler{
		ctx:       ctx,
		state:     state,
		exchanger: exchanger,
		onDone:    onDone,
	}
}

func (c *callbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	record, err := c.process(r)
	c.finish(record, err)

	if err != nil {
		log.Err(err).Msg("Authorization callback failed")
		renderFailure(w, err)
	} else {
		renderSuccess(w)
	}

	// Shutdown is deferred so the page reaches the browser first
	c.doneOnce.Do(c.onDone)
}

func (c *callbackHandler) process(r *http.Request) (record *oauthmodel.TokenRecord, err error) {
	defer func() {
		if p := recover(); p != nil {
			record = nil
			err = &CallbackError{
				Message: msgUnexpectedError,
				Detail:  string(debug.Stack()),
				Err:     fmt.Errorf("%w: panic during callback: %v", apperrors.ErrAuthorization, p),
			}
		}
	}()

	query := r.URL.Query()
	code := query.Get("code")
	returnedState := query.Get("state")
	expected := c.consumeState()

	if code == "" {
		cause := apperrors.ErrAuthorization
		if providerErr := query.Get("error"); providerErr != "" {
			cause = fmt.Errorf("%w: provider returned %s: %s", apperrors.ErrAuthorization, providerErr, query.Get("error_description"))
		}
		return nil, &CallbackError{Message: msgUnknownError, Err: cause}
	}

	if expected == nil || subtle.ConstantTimeCompare([]byte(returnedState), []byte(expected.state)) != 1 {
		return nil, &CallbackError{Message: msgStateMismatch, Err: apperrors.ErrStateMismatch}
	}

	record, err = c.exchanger.Exchange(c.ctx, code)
	if err != nil {
		return nil, &CallbackError{
			Message: msgMissingToken,
			Hint:    hintMissingToken,
			Detail:  err.Error(),
			Err:     fmt.Errorf("%w: %w", apperrors.ErrTokenExchange, err),
		}
	}
	if record == nil || record.AccessToken == "" {
		return nil, &CallbackError{Message: msgMissingToken, Hint: hintMissingToken, Err: apperrors.ErrTokenExchange}
	}
	return record, nil
}

// consumeState hands out the retained state once; later callers get nil
func (c *callbackHandler) consumeState() *authorizationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.state
	c.state = nil
	return state
}

func (c *callbackHandler) finish(record *oauthmodel.TokenRecord, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handled {
		return
	}
	c.handled = true
	c.out = outcome{record: record, err: err}
}

func (c *callbackHandler) result() (outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out, c.handled
}
