package fitbit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// https://dev.fitbit.com/build/reference/web-api/subscription/

// SubscriptionResult is the outcome of CreateSubscription. Status is one of
// 200, 201 (created), 409 (already exists) or 400 (invalid id).
type SubscriptionResult struct {
	SubscriptionID string
	Status         int
	Body           Response
}

func (r SubscriptionResult) Created() bool {
	return r.Status == http.StatusCreated || r.Status == http.StatusOK
}

func subscriptionPath(collection CollectionType, subscriptionID string) string {
	if collection == CollectionAll {
		return fmt.Sprintf("user/-/apiSubscriptions/%s.json", url.PathEscape(subscriptionID))
	}
	return fmt.Sprintf("user/-/%s/apiSubscriptions/%s.json", collection, url.PathEscape(subscriptionID))
}

// CreateSubscription subscribes to a collection, or to all of them for
// CollectionAll. An empty subscriptionID is replaced by a random UUID.
func (c *Client) CreateSubscription(ctx context.Context, collection CollectionType, subscriptionID string) (*SubscriptionResult, error) {
	if subscriptionID == "" {
		subscriptionID = uuid.NewString()
	}
	header := http.Header{}
	if c.subscriberID != "" {
		header.Set("X-Fitbit-Subscriber-Id", c.subscriberID)
	}

	status, body, err := c.do(ctx, http.MethodPost, APIVersion1, subscriptionPath(collection, subscriptionID), nil, header)
	if err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) || (status != http.StatusConflict && status != http.StatusBadRequest) {
			return nil, err
		}
	}

	result := &SubscriptionResult{SubscriptionID: subscriptionID, Status: status, Body: Response{}}
	if len(body) > 0 {
		if decodeErr := json.Unmarshal(body, &result.Body); decodeErr != nil && err == nil {
			return nil, fmt.Errorf("[fitbit CreateSubscription] failed to decode response: %w", decodeErr)
		}
	}

	switch status {
	case http.StatusConflict:
		log.Info().Str("subscription_id", subscriptionID).Msg("Subscription already exists")
	case http.StatusBadRequest:
		log.Warn().Str("subscription_id", subscriptionID).Msg("Invalid subscription ID")
	default:
		log.Info().Str("subscription_id", subscriptionID).Str("collection", string(collection)).Msg("Subscription created")
	}
	return result, nil
}

// ListSubscriptions returns the apiSubscriptions array
func (c *Client) ListSubscriptions(ctx context.Context, collection CollectionType) ([]Response, error) {
	path := "user/-/apiSubscriptions.json"
	if collection != CollectionAll {
		path = fmt.Sprintf("user/-/%s/apiSubscriptions.json", collection)
	}
	return c.getList(ctx, APIVersion1, path, nil, "apiSubscriptions")
}

func (c *Client) DeleteSubscription(ctx context.Context, collection CollectionType, subscriptionID string) error {
	header := http.Header{}
	if c.subscriberID != "" {
		header.Set("X-Fitbit-Subscriber-Id", c.subscriberID)
	}
	_, _, err := c.do(ctx, http.MethodDelete, APIVersion1, subscriptionPath(collection, subscriptionID), nil, header)
	return err
}
