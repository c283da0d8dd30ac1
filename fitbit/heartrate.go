package fitbit

import (
	"context"
	"fmt"
)

// https://dev.fitbit.com/build/reference/web-api/heartrate-timeseries/

func (c *Client) GetHeartRateTimeSeriesByDate(ctx context.Context, date string, period Period) (Response, error) {
	path := fmt.Sprintf("user/-/activities/heart/date/%s/%s.json", c.dateOrToday(date), period)
	return c.getJSON(ctx, APIVersion1, path, nil)
}

func (c *Client) GetHeartRateTimeSeriesByRange(ctx context.Context, startDate, endDate string) (Response, error) {
	path := fmt.Sprintf("user/-/activities/heart/date/%s/%s.json", c.dateOrToday(startDate), c.dateOrToday(endDate))
	return c.getJSON(ctx, APIVersion1, path, nil)
}

// GetHeartRateIntradayByDate defaults to 1 minute samples
func (c *Client) GetHeartRateIntradayByDate(ctx context.Context, date string, p IntradayParams) (Response, error) {
	path := fmt.Sprintf("user/-/activities/heart/date/%s/1d/%s%s.json", c.dateOrToday(date), p.detail(DetailMinute1), p.timeWindow())
	return c.getJSON(ctx, APIVersion1, path, p.values())
}

func (c *Client) GetHeartRateIntradayByRange(ctx context.Context, startDate, endDate string, p IntradayParams) (Response, error) {
	path := fmt.Sprintf("user/-/activities/heart/date/%s/%s/1d/%s%s.json", c.dateOrToday(startDate), c.dateOrToday(endDate), p.detail(DetailMinute1), p.timeWindow())
	return c.getJSON(ctx, APIVersion1, path, p.values())
}
