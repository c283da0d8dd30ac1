package fitbit

import "context"

// https://dev.fitbit.com/build/reference/web-api/electrocardiogram/

// GetECGLogList returns the ecgReadings array. AfterDate wins when both dates
// are set; with neither, readings after yesterday are listed.
func (c *Client) GetECGLogList(ctx context.Context, p LogListParams) ([]Response, error) {
	if p.BeforeDate == "" && p.AfterDate == "" {
		p.AfterDate = DaysAgo(c.nowFunc(), 1)
	}
	return c.getList(ctx, APIVersion1, "user/-/ecg/list.json", p.values(true, 10), "ecgReadings")
}

// https://dev.fitbit.com/build/reference/web-api/irregular-rhythm-notifications/

// GetIRNAlertsList pages like GetECGLogList
func (c *Client) GetIRNAlertsList(ctx context.Context, p LogListParams) (Response, error) {
	if p.BeforeDate == "" && p.AfterDate == "" {
		p.AfterDate = DaysAgo(c.nowFunc(), 1)
	}
	return c.getJSON(ctx, APIVersion1, "user/-/irn/alerts/list.json", p.values(true, 10))
}

func (c *Client) GetIRNProfile(ctx context.Context) (Response, error) {
	return c.getJSON(ctx, APIVersion1, "user/-/irn/profile.json", nil)
}
