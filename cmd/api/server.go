package main

import (
	"net/http"
	"time"

	"github.com/asbbic/membership/factory"
	"github.com/asbbic/membership/internal/api/handlers"
	"github.com/asbbic/membership/internal/config"
)

type Server struct {
	Config   *config.Config
	Factory  *factory.Factory
	Handlers *handlers.Handlers
}

func NewServer() (*Server, func(), error) {
	cfg := config.New()

	factory, cleanup, err := factory.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	validate, trans, err := handlers.NewValidator()
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	handlers := handlers.NewHandlers(factory, cfg, validate, trans)

	server := &Server{
		Config:   cfg,
		Factory:  factory,
		Handlers: handlers,
	}

	server.router()
	return server, cleanup, nil
}

func (s *Server) Start() {
	s.Factory.Logger.Info().Str("port", s.Config.Server.Port).Msg("server starting")

	srv := &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      s.Factory.Router,
		WriteTimeout: time.Second * 50,
		ReadTimeout:  time.Second * 30,
		IdleTimeout:  time.Minute,
	}

	if err := srv.ListenAndServe(); err != nil {
		s.Factory.Logger.Fatal().Err(err).Msg("failed to start server")
	}
}
