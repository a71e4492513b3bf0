// Package server exposes the diagnosis engine over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tonelab/internal/config"
	"tonelab/internal/diagnose"
	"tonelab/internal/server/handlers"
)

type Server struct {
	config *config.Config
	router *gin.Engine
	server *http.Server
	log    zerolog.Logger

	imageHandler *handlers.ImageHandler
}

func NewServer(cfg *config.Config, engine *diagnose.Engine, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	return &Server{
		config:       cfg,
		router:       router,
		log:          log,
		imageHandler: handlers.NewImageHandler(engine),
	}
}

func (s *Server) Setup() error {
	s.setupMiddleware()

	s.setupRoutes()

	s.server = &http.Server{
		Addr:    s.config.HTTPAddr,
		Handler: s.router,
	}

	return nil
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.config.HTTPAddr).Msg("starting diagnosis API")
	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	s.log.Info().Msg("stopping diagnosis API")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Router returns the underlying gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
