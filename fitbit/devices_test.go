package fitbit_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jrsteele09/go-fitbit-client/fitbit"
	apperrors "github.com/jrsteele09/go-fitbit-client/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestGetDevices_DecodesArray(t *testing.T) {
	f := setupAPIFixture(t)
	f.route(http.MethodGet, "/1/user/-/devices.json", http.StatusOK, `[{"id":"816713257","deviceVersion":"Charge 6"},{"id":"99","deviceVersion":"Aria"}]`)

	devices, err := f.client.GetDevices(context.Background())

	require.NoError(t, err)
	require.Len(t, devices, 2)
	require.Equal(t, "Charge 6", devices[0]["deviceVersion"])
}

func TestGetAlarms_UsesFirstDeviceWhenTrackerEmpty(t *testing.T) {
	f := setupAPIFixture(t)
	f.route(http.MethodGet, "/1/user/-/devices.json", http.StatusOK, `[{"id":"816713257"},{"id":"99"}]`)
	f.route(http.MethodGet, "/1/user/-/devices/tracker/816713257/alarms.json", http.StatusOK, `{"trackerAlarms":[{"alarmId":1,"time":"07:00-08:00"}]}`)

	alarms, err := f.client.GetAlarms(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, alarms, 1)
	require.Equal(t, "/1/user/-/devices/tracker/816713257/alarms.json", f.lastRequest().Path)
}

func TestGetAlarms_BadRequestIsEmptyList(t *testing.T) {
	f := setupAPIFixture(t)
	f.route(http.MethodGet, "/1/user/-/devices/tracker/42/alarms.json", http.StatusBadRequest, `{"errors":[{"errorType":"validation"}]}`)

	alarms, err := f.client.GetAlarms(context.Background(), "42")

	require.NoError(t, err)
	require.NotNil(t, alarms)
	require.Empty(t, alarms)
}

func TestGetAlarms_OtherErrorsPropagate(t *testing.T) {
	f := setupAPIFixture(t)
	f.route(http.MethodGet, "/1/user/-/devices/tracker/42/alarms.json", http.StatusForbidden, `{}`)

	_, err := f.client.GetAlarms(context.Background(), "42")

	var apiErr *fitbit.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestGetAlarms_NoDevices(t *testing.T) {
	f := setupAPIFixture(t)
	f.route(http.MethodGet, "/1/user/-/devices.json", http.StatusOK, `[]`)

	_, err := f.client.GetAlarms(context.Background(), "")

	require.ErrorIs(t, err, apperrors.ErrNoDevices)
	require.Equal(t, 1, f.requestCount())
}
