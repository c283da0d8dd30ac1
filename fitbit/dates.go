package fitbit

import "time"

const dateLayout = "2006-01-02"

// Date formats t the way the Web API expects dates in paths and queries
func Date(t time.Time) string {
	return t.Format(dateLayout)
}

func Today(now time.Time) string {
	return Date(now)
}

func DaysAgo(now time.Time, days int) string {
	return Date(now.AddDate(0, 0, -days))
}
