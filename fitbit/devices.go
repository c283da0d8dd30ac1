package fitbit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	apperrors "github.com/jrsteele09/go-fitbit-client/internal/errors"
)

// https://dev.fitbit.com/build/reference/web-api/devices/

// GetDevices lists the trackers and scales paired with the account
func (c *Client) GetDevices(ctx context.Context) ([]Response, error) {
	return c.getArray(ctx, APIVersion1, "user/-/devices.json")
}

// GetAlarms lists the alarms of a tracker. An empty trackerID selects the
// first paired device, and ErrNoDevices is returned when there is none.
// The API answers 400 for trackers without alarm support, which is
// reported as an empty list.
func (c *Client) GetAlarms(ctx context.Context, trackerID string) ([]Response, error) {
	if trackerID == "" {
		devices, err := c.GetDevices(ctx)
		if err != nil {
			return nil, fmt.Errorf("[fitbit GetAlarms] failed to list devices: %w", err)
		}
		if len(devices) == 0 {
			return nil, apperrors.ErrNoDevices
		}
		trackerID = fmt.Sprint(devices[0]["id"])
	}

	path := fmt.Sprintf("user/-/devices/tracker/%s/alarms.json", url.PathEscape(trackerID))
	alarms, err := c.getList(ctx, APIVersion1, path, nil, "trackerAlarms")
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			return []Response{}, nil
		}
		return nil, err
	}
	return alarms, nil
}
