package server

// Route path constants
const (
	// RouteFitbitNotifications is the subscriber endpoint registered in the Fitbit developer console
	RouteFitbitNotifications = "/fitbit-notifications"
)
