package server

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteFitbitNotifications, ChainMiddleware(s.VerifyHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteFitbitNotifications, ChainMiddleware(s.NotificationHandler(), s.APIMiddleware()...))
}
