package fitbit

import (
	"context"
	"fmt"
)

// Breathing rate, cardio fitness, HRV, SpO2 and temperature share the same
// date and date-range shapes.

func (c *Client) byDate(ctx context.Context, prefix, date, suffix string) (Response, error) {
	return c.getJSON(ctx, APIVersion1, fmt.Sprintf("user/-/%s/date/%s%s.json", prefix, c.dateOrToday(date), suffix), nil)
}

func (c *Client) byRange(ctx context.Context, prefix, startDate, endDate, suffix string) (Response, error) {
	path := fmt.Sprintf("user/-/%s/date/%s/%s%s.json", prefix, c.dateOrToday(startDate), c.dateOrToday(endDate), suffix)
	return c.getJSON(ctx, APIVersion1, path, nil)
}

// https://dev.fitbit.com/build/reference/web-api/breathing-rate/

func (c *Client) GetBreathingRateSummaryByDate(ctx context.Context, date string) (Response, error) {
	return c.byDate(ctx, "br", date, "")
}

func (c *Client) GetBreathingRateSummaryByRange(ctx context.Context, startDate, endDate string) (Response, error) {
	return c.byRange(ctx, "br", startDate, endDate, "")
}

func (c *Client) GetBreathingRateIntradayByDate(ctx context.Context, date string) (Response, error) {
	return c.byDate(ctx, "br", date, "/all")
}

func (c *Client) GetBreathingRateIntradayByRange(ctx context.Context, startDate, endDate string) (Response, error) {
	return c.byRange(ctx, "br", startDate, endDate, "/all")
}

// https://dev.fitbit.com/build/reference/web-api/cardio-fitness-score/

func (c *Client) GetVO2MaxSummaryByDate(ctx context.Context, date string) (Response, error) {
	return c.byDate(ctx, "cardioscore", date, "")
}

func (c *Client) GetVO2MaxSummaryByRange(ctx context.Context, startDate, endDate string) (Response, error) {
	return c.byRange(ctx, "cardioscore", startDate, endDate, "")
}

// https://dev.fitbit.com/build/reference/web-api/heartrate-variability/

func (c *Client) GetHRVSummaryByDate(ctx context.Context, date string) (Response, error) {
	return c.byDate(ctx, "hrv", date, "")
}

func (c *Client) GetHRVSummaryByRange(ctx context.Context, startDate, endDate string) (Response, error) {
	return c.byRange(ctx, "hrv", startDate, endDate, "")
}

func (c *Client) GetHRVIntradayByDate(ctx context.Context, date string) (Response, error) {
	return c.byDate(ctx, "hrv", date, "/all")
}

func (c *Client) GetHRVIntradayByRange(ctx context.Context, startDate, endDate string) (Response, error) {
	return c.byRange(ctx, "hrv", startDate, endDate, "/all")
}

// https://dev.fitbit.com/build/reference/web-api/spo2/

func (c *Client) GetSpO2ByDate(ctx context.Context, date string) (Response, error) {
	return c.byDate(ctx, "spo2", date, "")
}

func (c *Client) GetSpO2ByRange(ctx context.Context, startDate, endDate string) (Response, error) {
	return c.byRange(ctx, "spo2", startDate, endDate, "")
}

func (c *Client) GetSpO2IntradayByDate(ctx context.Context, date string) (Response, error) {
	return c.byDate(ctx, "spo2", date, "/all")
}

func (c *Client) GetSpO2IntradayByRange(ctx context.Context, startDate, endDate string) (Response, error) {
	return c.byRange(ctx, "spo2", startDate, endDate, "/all")
}

// https://dev.fitbit.com/build/reference/web-api/temperature/

func (c *Client) GetTemperatureCoreByDate(ctx context.Context, date string) (Response, error) {
	return c.byDate(ctx, "temp/core", date, "")
}

func (c *Client) GetTemperatureCoreByRange(ctx context.Context, startDate, endDate string) (Response, error) {
	return c.byRange(ctx, "temp/core", startDate, endDate, "")
}

func (c *Client) GetTemperatureSkinByDate(ctx context.Context, date string) (Response, error) {
	return c.byDate(ctx, "temp/skin", date, "")
}

func (c *Client) GetTemperatureSkinByRange(ctx context.Context, startDate, endDate string) (Response, error) {
	return c.byRange(ctx, "temp/skin", startDate, endDate, "")
}
