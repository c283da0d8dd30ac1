package fitbit

import (
	"context"
	"fmt"
)

// https://dev.fitbit.com/build/reference/web-api/body/

func (c *Client) GetBodyGoals(ctx context.Context, goalType BodyGoalType) (Response, error) {
	return c.getJSON(ctx, APIVersion1, fmt.Sprintf("user/-/body/log/%s/goal.json", goalType), nil)
}

func (c *Client) GetBodyFatLog(ctx context.Context, date string) (Response, error) {
	return c.getJSON(ctx, APIVersion1, fmt.Sprintf("user/-/body/log/fat/date/%s.json", c.dateOrToday(date)), nil)
}

func (c *Client) GetBodyWeightLog(ctx context.Context, date string) (Response, error) {
	return c.getJSON(ctx, APIVersion1, fmt.Sprintf("user/-/body/log/weight/date/%s.json", c.dateOrToday(date)), nil)
}

// GetBodyTimeSeriesByDate accepts PeriodMax in addition to the common periods
func (c *Client) GetBodyTimeSeriesByDate(ctx context.Context, resource BodyResource, date string, period Period) (Response, error) {
	path := fmt.Sprintf("user/-/body/%s/date/%s/%s.json", resource, c.dateOrToday(date), period)
	return c.getJSON(ctx, APIVersion1, path, nil)
}

func (c *Client) GetBodyTimeSeriesByRange(ctx context.Context, resource BodyResource, startDate, endDate string) (Response, error) {
	path := fmt.Sprintf("user/-/body/%s/date/%s/%s.json", resource, c.dateOrToday(startDate), c.dateOrToday(endDate))
	return c.getJSON(ctx, APIVersion1, path, nil)
}

func (c *Client) GetBodyFatTimeSeriesByDate(ctx context.Context, date string, period Period) (Response, error) {
	path := fmt.Sprintf("user/-/body/log/fat/date/%s/%s.json", c.dateOrToday(date), period)
	return c.getJSON(ctx, APIVersion1, path, nil)
}

func (c *Client) GetBodyFatTimeSeriesByRange(ctx context.Context, startDate, endDate string) (Response, error) {
	path := fmt.Sprintf("user/-/body/log/fat/date/%s/%s.json", c.dateOrToday(startDate), c.dateOrToday(endDate))
	return c.getJSON(ctx, APIVersion1, path, nil)
}

func (c *Client) GetBodyWeightTimeSeriesByDate(ctx context.Context, date string, period Period) (Response, error) {
	path := fmt.Sprintf("user/-/body/log/weight/date/%s/%s.json", c.dateOrToday(date), period)
	return c.getJSON(ctx, APIVersion1, path, nil)
}

func (c *Client) GetBodyWeightTimeSeriesByRange(ctx context.Context, startDate, endDate string) (Response, error) {
	path := fmt.Sprintf("user/-/body/log/weight/date/%s/%s.json", c.dateOrToday(startDate), c.dateOrToday(endDate))
	return c.getJSON(ctx, APIVersion1, path, nil)
}
