package server

func (s *Server) setupRoutes() {
	api := s.router.Group("/api/image")
	{
		api.GET("/ping", s.imageHandler.Ping)
		api.POST("/predict", s.imageHandler.Predict)
		api.POST("/extract_features", s.imageHandler.ExtractFeatures)
	}
}
