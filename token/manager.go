package token

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/go-fitbit-client/internal/errors"
	"github.com/jrsteele09/go-fitbit-client/oauthmodel"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Authorizer obtains a brand new token record, normally by running the
// browser handshake. It is only used when nothing has been persisted yet.
type Authorizer interface {
	Authorize(ctx context.Context) (*oauthmodel.TokenRecord, error)
}

// AuthorizerFunc adapts a function to the Authorizer interface
type AuthorizerFunc func(ctx context.Context) (*oauthmodel.TokenRecord, error)

func (f AuthorizerFunc) Authorize(ctx context.Context) (*oauthmodel.TokenRecord, error) {
	return f(ctx)
}

// Manager keeps the single token record valid and persisted.
// Expiry is derived from the time the record was acquired plus expires_in.
// A Manager is meant for one process acting for one user; concurrent
// refreshes are not coordinated and the last write to storage wins.
type Manager struct {
	repo       Repo
	config     RefreshConfig
	authorizer Authorizer
	httpClient *http.Client
	nowFunc    func() time.Time
	expirySkew time.Duration

	mu         sync.RWMutex
	record     *oauthmodel.TokenRecord
	acquiredAt time.Time
}

var _ oauth2.TokenSource = (*Manager)(nil)

type ManagerOption func(*Manager)

// WithAuthorizer sets how a token is obtained when storage is empty
func WithAuthorizer(authorizer Authorizer) ManagerOption {
	return func(m *Manager) {
		m.authorizer = authorizer
	}
}

func WithHTTPClient(client *http.Client) ManagerOption {
	return func(m *Manager) {
		m.httpClient = client
	}
}

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

// WithExpirySkew treats tokens as expired this long before their real expiry
func WithExpirySkew(skew time.Duration) ManagerOption {
	return func(m *Manager) {
		m.expirySkew = skew
	}
}

func NewManager(repo Repo, cfg RefreshConfig, options ...ManagerOption) *Manager {
	m := &Manager{
		repo:   repo,
		config: cfg,
	}

	for _, opt := range options {
		opt(m)
	}

	if m.httpClient == nil {
		m.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}
	return m
}

// Load reads the persisted record. When there is none, the authorizer is run
// synchronously and its result persisted before it is adopted.
func (m *Manager) Load(ctx context.Context) (*oauthmodel.TokenRecord, error) {
	record, err := m.repo.Load()
	switch {
	case err == nil:
		m.adopt(record, m.loadedAcquiredAt())
		log.Debug().Str("user", record.Subject()).Time("expires_at", m.ExpiresAt()).Msg("Loaded persisted token")
		return record, nil

	case apperrors.Is(err, apperrors.ErrTokenNotFound):
		if m.authorizer == nil {
			return nil, fmt.Errorf("[Manager Load] no persisted token and no authorizer configured: %w", err)
		}
		log.Info().Msg("No persisted token, starting browser authorization")
		record, err = m.authorizer.Authorize(ctx)
		if err != nil {
			return nil, fmt.Errorf("[Manager Load] authorization failed: %w", err)
		}
		acquiredAt := m.nowFunc()
		if err := m.Persist(record); err != nil {
			return nil, fmt.Errorf("[Manager Load] %w", err)
		}
		m.adopt(record, acquiredAt)
		log.Info().Str("user", record.Subject()).Msg("Authorized and persisted new token")
		return record, nil

	case apperrors.Is(err, apperrors.ErrStorage):
		return nil, fmt.Errorf("[Manager Load] %w", err)

	default:
		return nil, fmt.Errorf("[Manager Load] %w: %w", apperrors.ErrStorage, err)
	}
}

// AccessToken returns a currently valid access token, refreshing first when
// the held record has expired.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	if m.Current() == nil {
		if _, err := m.Load(ctx); err != nil {
			return "", err
		}
	}

	if m.IsExpired() {
		log.Info().Time("expired_at", m.ExpiresAt()).Msg("Token expired, refreshing")
		record, err := m.Refresh(ctx)
		if err != nil {
			return "", err
		}
		return record.AccessToken, nil
	}
	return m.Current().AccessToken, nil
}

// Refresh exchanges the held refresh token for a new record. On failure the
// held and persisted records are left as they were.
func (m *Manager) Refresh(ctx context.Context) (*oauthmodel.TokenRecord, error) {
	current := m.Current()
	if current == nil {
		return nil, fmt.Errorf("[Manager Refresh] %w: no token loaded", apperrors.ErrRefresh)
	}

	record, err := m.requestRefresh(ctx, current.RefreshToken)
	if err != nil {
		log.Err(err).Msg("Token refresh failed")
		return nil, err
	}

	acquiredAt := m.nowFunc()
	if err := m.Persist(record); err != nil {
		return nil, fmt.Errorf("[Manager Refresh] %w", err)
	}
	m.adopt(record, acquiredAt)

	log.Info().Str("user", record.Subject()).Time("expires_at", m.ExpiresAt()).Msg("Token refreshed")
	return record, nil
}

// Persist overwrites storage with the full record
func (m *Manager) Persist(record *oauthmodel.TokenRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("refusing to persist token: %w", err)
	}
	if err := m.repo.Save(record); err != nil {
		if apperrors.Is(err, apperrors.ErrStorage) {
			return err
		}
		return fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}
	return nil
}

// Token implements oauth2.TokenSource so HTTP clients built with
// oauth2.Transport ask for a valid token before every request.
func (m *Manager) Token() (*oauth2.Token, error) {
	if _, err := m.AccessToken(context.Background()); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.record.OAuth2Token(m.acquiredAt), nil
}

// Current returns a copy of the held record, or nil when nothing is loaded
func (m *Manager) Current() *oauthmodel.TokenRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.record == nil {
		return nil
	}
	record := *m.record
	return &record
}

// ExpiresAt is the acquisition time of the held record plus its expires_in
func (m *Manager) ExpiresAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.record == nil {
		return time.Time{}
	}
	return m.record.ExpiresAt(m.acquiredAt)
}

// IsExpired is true when nothing is held, expires_in is not positive, or the
// derived expiry (less the configured skew) has been reached.
func (m *Manager) IsExpired() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.record == nil || m.record.ExpiresIn <= 0 {
		return true
	}
	expiresAt := m.record.ExpiresAt(m.acquiredAt).Add(-m.expirySkew)
	return !m.nowFunc().Before(expiresAt)
}

func (m *Manager) adopt(record *oauthmodel.TokenRecord, acquiredAt time.Time) {
	held := *record
	m.mu.Lock()
	m.record = &held
	m.acquiredAt = acquiredAt
	m.mu.Unlock()
}

// loadedAcquiredAt uses the storage write time when the repo knows it
func (m *Manager) loadedAcquiredAt() time.Time {
	if timed, ok := m.repo.(AcquisitionTimeReader); ok {
		if t, err := timed.AcquiredAt(); err == nil {
			return t
		}
	}
	return m.nowFunc()
}
