package fitbit

import (
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-fitbit-client/internal/utils"
)

// LogListParams pages through a log list. The API accepts either a before or
// an after date, never both; which one wins when both are set depends on the
// endpoint and is documented on each method.
type LogListParams struct {
	BeforeDate string
	AfterDate  string
	Sort       SortOrder
	Limit      int
	Offset     int
}

func (p LogListParams) values(preferAfter bool, defaultLimit int) url.Values {
	params := url.Values{}
	sort := p.Sort
	if sort == "" {
		sort = SortAscending
	}
	limit := p.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	params.Set("sort", string(sort))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(p.Offset))

	first, second := "beforeDate", "afterDate"
	firstValue, secondValue := p.BeforeDate, p.AfterDate
	if preferAfter {
		first, second = second, first
		firstValue, secondValue = secondValue, firstValue
	}
	if firstValue != "" {
		params.Set(first, firstValue)
	} else if secondValue != "" {
		params.Set(second, secondValue)
	}
	return params
}

// IntradayParams narrows intraday requests. StartTime and EndTime (HH:mm)
// are only applied when both are set.
type IntradayParams struct {
	DetailLevel DetailLevel
	StartTime   *string
	EndTime     *string
	Timezone    string
}

func (p IntradayParams) detail(defaultLevel DetailLevel) DetailLevel {
	if p.DetailLevel == "" {
		return defaultLevel
	}
	return p.DetailLevel
}

// timeWindow returns the "/time/{start}/{end}" path suffix, or ""
func (p IntradayParams) timeWindow() string {
	start, end := utils.Value(p.StartTime), utils.Value(p.EndTime)
	if start == "" || end == "" {
		return ""
	}
	return "/time/" + start + "/" + end
}

func (p IntradayParams) values() url.Values {
	return timezoneValues(p.Timezone)
}

func timezoneValues(timezone string) url.Values {
	if timezone == "" {
		timezone = "UTC"
	}
	return url.Values{"timezone": []string{timezone}}
}
