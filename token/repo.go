package token

import (
	"time"

	"github.com/jrsteele09/go-fitbit-client/oauthmodel"
)

// Repo persists the single token record of the authorized user.
// Load returns errors.ErrTokenNotFound when nothing has been stored yet and
// errors.ErrStorage when the stored record cannot be read back.
// Save always replaces the full record.
type Repo interface {
	Load() (*oauthmodel.TokenRecord, error)
	Save(record *oauthmodel.TokenRecord) error
}

// AcquisitionTimeReader is implemented by repos that know when the stored
// record was written, which is when it was acquired from the provider.
type AcquisitionTimeReader interface {
	AcquiredAt() (time.Time, error)
}
