package tokenfakerepo

import (
	"sync"

	apperrors "github.com/jrsteele09/go-fitbit-client/internal/errors"
	"github.com/jrsteele09/go-fitbit-client/oauthmodel"
	"github.com/jrsteele09/go-fitbit-client/token"
)

var _ token.Repo = (*FakeTokenRepo)(nil)

// FakeTokenRepo holds the record in memory and counts calls
type FakeTokenRepo struct {
	record  *oauthmodel.TokenRecord
	loadErr error
	saveErr error
	loads   int
	saves   int
	lock    sync.RWMutex
}

func NewFakeTokenRepo() *FakeTokenRepo {
	return &FakeTokenRepo{}
}

// NewFakeTokenRepoWith starts with a stored record
func NewFakeTokenRepoWith(record oauthmodel.TokenRecord) *FakeTokenRepo {
	return &FakeTokenRepo{record: &record}
}

func (tr *FakeTokenRepo) Load() (*oauthmodel.TokenRecord, error) {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	tr.loads++
	if tr.loadErr != nil {
		return nil, tr.loadErr
	}
	if tr.record == nil {
		return nil, apperrors.ErrTokenNotFound
	}
	record := *tr.record
	return &record, nil
}

func (tr *FakeTokenRepo) Save(record *oauthmodel.TokenRecord) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	tr.saves++
	if tr.saveErr != nil {
		return tr.saveErr
	}
	stored := *record
	tr.record = &stored
	return nil
}

// Stored returns what a subsequent Load would return, without counting
func (tr *FakeTokenRepo) Stored() *oauthmodel.TokenRecord {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	if tr.record == nil {
		return nil
	}
	record := *tr.record
	return &record
}

func (tr *FakeTokenRepo) SetLoadError(err error) {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	tr.loadErr = err
}

func (tr *FakeTokenRepo) SetSaveError(err error) {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	tr.saveErr = err
}

func (tr *FakeTokenRepo) Loads() int {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	return tr.loads
}

func (tr *FakeTokenRepo) Saves() int {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	return tr.saves
}
