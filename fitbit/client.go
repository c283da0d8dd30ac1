// Package fitbit is a client for the Fitbit Web API. Each method maps to one
// endpoint and returns the decoded JSON body.
package fitbit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-fitbit-client/internal/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL = "https://api.fitbit.com"

	maxResponseSize = 32 << 20
)

// Response is a decoded JSON object
type Response = map[string]any

// APIError reports a non-2xx answer from the Web API
type APIError struct {
	StatusCode int
	Method     string
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (e *APIError) Is(target error) bool {
	return target == apperrors.ErrAPI
}

type Client struct {
	baseURL      string
	baseClient   *http.Client
	httpClient   *http.Client
	nowFunc      func() time.Time
	subscriberID string
}

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient supplies the timeout and transport that authorized requests are layered on
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.baseClient = client
	}
}

// WithNowFunc sets the clock used for default dates
func WithNowFunc(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.nowFunc = now
	}
}

// WithSubscriberID sets the X-Fitbit-Subscriber-Id header sent when creating subscriptions
func WithSubscriberID(id string) ClientOption {
	return func(c *Client) {
		c.subscriberID = id
	}
}

// NewClient builds a client whose every request asks source for a valid
// access token first. A token.Manager is the usual source.
func NewClient(source oauth2.TokenSource, options ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		nowFunc: time.Now,
	}

	for _, opt := range options {
		opt(c)
	}

	if c.baseClient == nil {
		c.baseClient = &http.Client{Timeout: 30 * time.Second}
	}
	c.httpClient = &http.Client{
		Timeout: c.baseClient.Timeout,
		Transport: &oauth2.Transport{
			Source: source,
			Base:   c.baseClient.Transport,
		},
	}
	return c
}

func (c *Client) endpoint(version APIVersion, path string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, version, strings.TrimPrefix(path, "/"))
}

func (c *Client) do(ctx context.Context, method string, version APIVersion, path string, params url.Values, header http.Header) (int, []byte, error) {
	target := c.endpoint(version, path)
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("[fitbit Client] failed to create request: %w", err)
	}
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	log.Debug().Str("method", method).Str("url", target).Msg("Fitbit API request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("[fitbit Client] %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("[fitbit Client] failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, body, &APIError{StatusCode: resp.StatusCode, Method: method, URL: target, Body: string(body)}
	}
	return resp.StatusCode, body, nil
}

func (c *Client) get(ctx context.Context, version APIVersion, path string, params url.Values, out any) error {
	_, body, err := c.do(ctx, http.MethodGet, version, path, params, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("[fitbit Client] failed to decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, version APIVersion, path string, params url.Values) (Response, error) {
	var resp Response
	if err := c.get(ctx, version, path, params, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// getList decodes an object and returns the array stored under key
func (c *Client) getList(ctx context.Context, version APIVersion, path string, params url.Values, key string) ([]Response, error) {
	resp, err := c.getJSON(ctx, version, path, params)
	if err != nil {
		return nil, err
	}
	return listFrom(resp, key)
}

func (c *Client) getRaw(ctx context.Context, version APIVersion, path string, params url.Values, accept string) ([]byte, error) {
	header := http.Header{}
	header.Set("Accept", accept)
	_, body, err := c.do(ctx, http.MethodGet, version, path, params, header)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func listFrom(resp Response, key string) ([]Response, error) {
	raw, ok := resp[key]
	if !ok || raw == nil {
		return []Response{}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("[fitbit Client] %q is not a list", key)
	}
	return toResponses(items)
}

func toResponses(items []any) ([]Response, error) {
	list := make([]Response, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("[fitbit Client] unexpected list element %T", item)
		}
		list = append(list, obj)
	}
	return list, nil
}

// dateOrToday substitutes today's date for an empty date
func (c *Client) dateOrToday(date string) string {
	if date == "" {
		return Today(c.nowFunc())
	}
	return date
}
