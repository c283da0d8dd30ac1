package server

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	signatureHeader     = "X-Fitbit-Signature"
	maxNotificationSize = 1 << 20
)

// Notification tells the subscriber that a collection changed for a user.
// The data itself has to be fetched through the Web API.
type Notification struct {
	CollectionType string `json:"collectionType"`
	Date           string `json:"date"`
	OwnerID        string `json:"ownerId"`
	OwnerType      string `json:"ownerType"`
	SubscriptionID string `json:"subscriptionId"`
}

// NotificationSink receives each accepted batch. Fitbit disables subscribers
// that take longer than 5 seconds to answer, so sinks must not block.
type NotificationSink interface {
	Notify(ctx context.Context, notifications []Notification)
}

type NotificationSinkFunc func(ctx context.Context, notifications []Notification)

func (f NotificationSinkFunc) Notify(ctx context.Context, notifications []Notification) {
	f(ctx, notifications)
}

// LogSink writes every notification to the global logger
type LogSink struct{}

func (LogSink) Notify(ctx context.Context, notifications []Notification) {
	for _, n := range notifications {
		log.Info().
			Str("request_id", RequestID(ctx)).
			Str("collection", n.CollectionType).
			Str("date", n.Date).
			Str("owner_id", n.OwnerID).
			Str("owner_type", n.OwnerType).
			Str("subscription_id", n.SubscriptionID).
			Msg("Received notification")
	}
}

// VerifyHandler answers the subscriber verification requests. Fitbit sends
// the correct code expecting 204 and a wrong one expecting 404.
func (s *Server) VerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		verify := r.URL.Query().Get("verify")
		if s.verifyCode == "" || !hmac.Equal([]byte(verify), []byte(s.verifyCode)) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) NotificationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxNotificationSize))
		if err != nil {
			log.Err(err).Str("request_id", RequestID(r.Context())).Msg("Failed to read notification body")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if signature := r.Header.Get(signatureHeader); signature != "" && s.clientSecret != "" {
			if !validSignature(body, signature, s.clientSecret) {
				log.Warn().Str("request_id", RequestID(r.Context())).Msg("Notification signature mismatch")
				w.WriteHeader(http.StatusNotFound)
				return
			}
		}

		var notifications []Notification
		if err := json.Unmarshal(body, &notifications); err != nil {
			log.Err(err).Str("request_id", RequestID(r.Context())).Msg("Malformed notification body")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		s.sink.Notify(r.Context(), notifications)
		w.WriteHeader(http.StatusNoContent)
	}
}

// Sign computes the X-Fitbit-Signature value: the base64 HMAC-SHA1 of body
// keyed with "<client secret>&"
func Sign(body []byte, clientSecret string) string {
	mac := hmac.New(sha1.New, []byte(clientSecret+"&"))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func validSignature(body []byte, signature, clientSecret string) bool {
	return hmac.Equal([]byte(Sign(body, clientSecret)), []byte(signature))
}
