package fitbit

import (
	"context"
	"fmt"
)

// https://dev.fitbit.com/build/reference/web-api/sleep/

func (c *Client) GetSleepGoal(ctx context.Context) (Response, error) {
	return c.getJSON(ctx, APIVersion1_2, "user/-/sleep/goal.json", nil)
}

// GetSleepLogByDate returns the sleep array for a date
func (c *Client) GetSleepLogByDate(ctx context.Context, date string) ([]Response, error) {
	path := fmt.Sprintf("user/-/sleep/date/%s.json", c.dateOrToday(date))
	return c.getList(ctx, APIVersion1_2, path, nil, "sleep")
}

func (c *Client) GetSleepLogByRange(ctx context.Context, startDate, endDate string) ([]Response, error) {
	path := fmt.Sprintf("user/-/sleep/date/%s/%s.json", c.dateOrToday(startDate), c.dateOrToday(endDate))
	return c.getList(ctx, APIVersion1_2, path, nil, "sleep")
}

// GetSleepLogList prefers AfterDate and defaults to the past week, 100 entries
func (c *Client) GetSleepLogList(ctx context.Context, p LogListParams) (Response, error) {
	if p.BeforeDate == "" && p.AfterDate == "" {
		p.AfterDate = DaysAgo(c.nowFunc(), 7)
	}
	return c.getJSON(ctx, APIVersion1_2, "user/-/sleep/list.json", p.values(true, 100))
}
