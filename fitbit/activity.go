package fitbit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// https://dev.fitbit.com/build/reference/web-api/active-zone-minutes-timeseries/

func (c *Client) GetAZMTimeSeriesByPeriod(ctx context.Context, date string, period Period) (Response, error) {
	path := fmt.Sprintf("user/-/activities/active-zone-minutes/date/%s/%s.json", c.dateOrToday(date), period)
	return c.getJSON(ctx, APIVersion1, path, nil)
}

func (c *Client) GetAZMTimeSeriesByInterval(ctx context.Context, startDate, endDate string) (Response, error) {
	path := fmt.Sprintf("user/-/activities/active-zone-minutes/date/%s/%s.json", c.dateOrToday(startDate), c.dateOrToday(endDate))
	return c.getJSON(ctx, APIVersion1, path, nil)
}

// GetAZMIntradayByDate defaults to 15 minute samples
func (c *Client) GetAZMIntradayByDate(ctx context.Context, date string, detail DetailLevel) (Response, error) {
	if detail == "" {
		detail = DetailMinute15
	}
	path := fmt.Sprintf("user/-/activities/active-zone-minutes/date/%s/1d/%s.json", c.dateOrToday(date), detail)
	return c.getJSON(ctx, APIVersion1, path, nil)
}

// https://dev.fitbit.com/build/reference/web-api/activity/

func (c *Client) GetActivityGoals(ctx context.Context, period ActivityGoalPeriod) (Response, error) {
	return c.getJSON(ctx, APIVersion1, fmt.Sprintf("user/-/activities/goals/%s.json", period), nil)
}

// GetActivityLogList uses BeforeDate when both dates are set. Limit defaults to 10.
func (c *Client) GetActivityLogList(ctx context.Context, p LogListParams) (Response, error) {
	if p.BeforeDate == "" && p.AfterDate == "" {
		p.BeforeDate = Today(c.nowFunc())
	}
	return c.getJSON(ctx, APIVersion1, "user/-/activities/list.json", p.values(false, 10))
}

// GetActivityTCX returns the raw Training Center XML of an activity log
func (c *Client) GetActivityTCX(ctx context.Context, logID string, includePartialTCX bool) ([]byte, error) {
	params := url.Values{}
	params.Set("includePartialTCX", strconv.FormatBool(includePartialTCX))
	path := fmt.Sprintf("user/-/activities/%s.tcx", url.PathEscape(logID))
	return c.getRaw(ctx, APIVersion1, path, params, "application/vnd.garmin.tcx+xml")
}

func (c *Client) GetActivityType(ctx context.Context, activityID string) (Response, error) {
	return c.getJSON(ctx, APIVersion1, fmt.Sprintf("activities/%s.json", url.PathEscape(activityID)), nil)
}

// GetAllActivityTypes lists the public activities and the user's private ones
func (c *Client) GetAllActivityTypes(ctx context.Context) (Response, error) {
	return c.getJSON(ctx, APIVersion1, "activities.json", nil)
}

func (c *Client) GetDailyActivitySummary(ctx context.Context, date string) (Response, error) {
	return c.getJSON(ctx, APIVersion1, fmt.Sprintf("user/-/activities/date/%s.json", c.dateOrToday(date)), nil)
}

// The favorite, frequent and recent endpoints answer with a JSON array

func (c *Client) GetFavoriteActivities(ctx context.Context) ([]Response, error) {
	return c.getArray(ctx, APIVersion1, "user/-/activities/favorite.json")
}

func (c *Client) GetFrequentActivities(ctx context.Context) ([]Response, error) {
	return c.getArray(ctx, APIVersion1, "user/-/activities/frequent.json")
}

func (c *Client) GetRecentActivities(ctx context.Context) ([]Response, error) {
	return c.getArray(ctx, APIVersion1, "user/-/activities/recent.json")
}

func (c *Client) GetLifetimeActivityStats(ctx context.Context) (Response, error) {
	return c.getJSON(ctx, APIVersion1, "user/-/activities.json", nil)
}

func (c *Client) GetActivityTimeSeriesByDate(ctx context.Context, resource ActivityResource, date string, period Period, timezone string) (Response, error) {
	path := fmt.Sprintf("user/-/activities/%s/date/%s/%s.json", resource, c.dateOrToday(date), period)
	return c.getJSON(ctx, APIVersion1, path, timezoneValues(timezone))
}

func (c *Client) GetActivityTimeSeriesByRange(ctx context.Context, resource ActivityResource, startDate, endDate, timezone string) (Response, error) {
	path := fmt.Sprintf("user/-/activities/%s/date/%s/%s.json", resource, c.dateOrToday(startDate), c.dateOrToday(endDate))
	return c.getJSON(ctx, APIVersion1, path, timezoneValues(timezone))
}

// GetActivityIntradayByDate defaults to 1 minute samples
func (c *Client) GetActivityIntradayByDate(ctx context.Context, resource ActivityResource, date string, p IntradayParams) (Response, error) {
	path := fmt.Sprintf("user/-/activities/%s/date/%s/1d/%s%s.json", resource, c.dateOrToday(date), p.detail(DetailMinute1), p.timeWindow())
	return c.getJSON(ctx, APIVersion1, path, p.values())
}

func (c *Client) GetActivityIntradayByRange(ctx context.Context, resource ActivityResource, startDate, endDate string, p IntradayParams) (Response, error) {
	path := fmt.Sprintf("user/-/activities/%s/date/%s/%s/1d/%s%s.json", resource, c.dateOrToday(startDate), c.dateOrToday(endDate), p.detail(DetailMinute1), p.timeWindow())
	return c.getJSON(ctx, APIVersion1, path, p.values())
}

func (c *Client) getArray(ctx context.Context, version APIVersion, path string) ([]Response, error) {
	var items []any
	if err := c.get(ctx, version, path, nil, &items); err != nil {
		return nil, err
	}
	return toResponses(items)
}
