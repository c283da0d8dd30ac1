// Package filerepo stores the token record as a JSON file on local disk.
package filerepo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/jrsteele09/go-fitbit-client/internal/errors"
	"github.com/jrsteele09/go-fitbit-client/oauthmodel"
	"github.com/jrsteele09/go-fitbit-client/token"
)

const fileMode = 0o600

var (
	_ token.Repo                  = (*Repo)(nil)
	_ token.AcquisitionTimeReader = (*Repo)(nil)
)

type Repo struct {
	path string
}

func New(path string) *Repo {
	return &Repo{path: path}
}

func (r *Repo) Path() string {
	return r.path
}

func (r *Repo) Load() (*oauthmodel.TokenRecord, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("[filerepo Load] %s: %w", r.path, apperrors.ErrTokenNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("[filerepo Load] %w: %w", apperrors.ErrStorage, err)
	}

	var record oauthmodel.TokenRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("[filerepo Load] corrupt token file %s: %w: %w", r.path, apperrors.ErrStorage, err)
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("[filerepo Load] %s: %w: %w", r.path, apperrors.ErrStorage, err)
	}
	return &record, nil
}

// Save replaces the file atomically: the record is written to a temp file in
// the same directory which is then renamed over the target.
func (r *Repo) Save(record *oauthmodel.TokenRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("[filerepo Save] %w: %w", apperrors.ErrStorage, err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("[filerepo Save] failed to create temp file: %w: %w", apperrors.ErrStorage, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("[filerepo Save] failed to write temp file: %w: %w", apperrors.ErrStorage, err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("[filerepo Save] failed to set permissions: %w: %w", apperrors.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("[filerepo Save] failed to close temp file: %w: %w", apperrors.ErrStorage, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		cleanup()
		return fmt.Errorf("[filerepo Save] failed to rename temp file: %w: %w", apperrors.ErrStorage, err)
	}
	return nil
}

// AcquiredAt is the time the file was last written
func (r *Repo) AcquiredAt() (time.Time, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
