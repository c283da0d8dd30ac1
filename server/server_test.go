package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jrsteele09/go-fitbit-client/server"
	"github.com/stretchr/testify/require"
)

const (
	testVerifyCode   = "3f1f7c1b0ad4"
	testClientSecret = "client-secret"
)

type testSubscriberConfig struct {
	verifyCode   string
	clientSecret string
}

func (c testSubscriberConfig) GetPort() string         { return ":0" }
func (c testSubscriberConfig) GetVerifyCode() string   { return c.verifyCode }
func (c testSubscriberConfig) GetClientSecret() string { return c.clientSecret }

// recordingSink keeps every batch it is handed
type recordingSink struct {
	mu      sync.Mutex
	batches [][]server.Notification
}

func (s *recordingSink) Notify(ctx context.Context, notifications []server.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, notifications)
}

func (s *recordingSink) received() [][]server.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batches
}

func newTestServer(t *testing.T, secret string) (*server.Server, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	return server.New(testSubscriberConfig{verifyCode: testVerifyCode, clientSecret: secret}, sink), sink
}

const notificationBody = `[
	{"collectionType":"sleep","date":"2024-03-15","ownerId":"ABC12D","ownerType":"user","subscriptionId":"sub-1"},
	{"collectionType":"activities","date":"2024-03-15","ownerId":"ABC12D","ownerType":"user","subscriptionId":"sub-1"}
]`

func TestVerify_CorrectCode(t *testing.T) {
	s, _ := newTestServer(t, "")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fitbit-notifications?verify="+testVerifyCode, nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestVerify_WrongOrMissingCode(t *testing.T) {
	s, _ := newTestServer(t, "")

	for _, target := range []string{"/fitbit-notifications?verify=wrong", "/fitbit-notifications"} {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}

func TestVerify_NoConfiguredCodeRejectsEmpty(t *testing.T) {
	s := server.New(testSubscriberConfig{}, nil)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fitbit-notifications?verify=", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotification_DeliveredToSink(t *testing.T) {
	s, sink := newTestServer(t, "")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fitbit-notifications", strings.NewReader(notificationBody)))

	require.Equal(t, http.StatusNoContent, rec.Code)
	batches := sink.received()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 2)
	require.Equal(t, server.Notification{
		CollectionType: "sleep",
		Date:           "2024-03-15",
		OwnerID:        "ABC12D",
		OwnerType:      "user",
		SubscriptionID: "sub-1",
	}, batches[0][0])
}

func TestNotification_MalformedBody(t *testing.T) {
	s, sink := newTestServer(t, "")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fitbit-notifications", strings.NewReader(`{"not":"a list"}`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, sink.received())
}

func TestNotification_ValidSignature(t *testing.T) {
	s, sink := newTestServer(t, testClientSecret)

	req := httptest.NewRequest(http.MethodPost, "/fitbit-notifications", strings.NewReader(notificationBody))
	req.Header.Set("X-Fitbit-Signature", server.Sign([]byte(notificationBody), testClientSecret))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, sink.received(), 1)
}

func TestNotification_SignatureMismatch(t *testing.T) {
	s, sink := newTestServer(t, testClientSecret)

	req := httptest.NewRequest(http.MethodPost, "/fitbit-notifications", strings.NewReader(notificationBody))
	req.Header.Set("X-Fitbit-Signature", server.Sign([]byte(notificationBody), "another-secret"))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, sink.received())
}

func TestNotification_UnsignedAcceptedWithSecret(t *testing.T) {
	s, sink := newTestServer(t, testClientSecret)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fitbit-notifications", strings.NewReader(notificationBody)))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, sink.received(), 1)
}

func TestRecoverMiddleware(t *testing.T) {
	panicking := server.NotificationSinkFunc(func(ctx context.Context, notifications []server.Notification) {
		panic("sink failure")
	})
	s := server.New(testSubscriberConfig{verifyCode: testVerifyCode}, panicking)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fitbit-notifications", strings.NewReader(notificationBody)))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRoutes(t *testing.T) {
	s, _ := newTestServer(t, "")

	require.Equal(t, []string{"GET /fitbit-notifications", "POST /fitbit-notifications"}, s.Routes())

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/fitbit-notifications", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
