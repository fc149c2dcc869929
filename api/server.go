package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rpupo63/blog-site/config"
	"github.com/rpupo63/blog-site/database"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.Config, database database.Database) (Server, error) {
	startupTime := time.Now()

	router, err := newRouter(database, withConfig(cfg), withStartupTime(startupTime))
	if err != nil {
		return Server{}, fmt.Errorf("build router: %w", err)
	}

	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      config.Config
	startupTime time.Time
}

func withConfig(c config.Config) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(database database.Database, opts ...func(*router)) (*chi.Mux, error) {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	pages, err := loadPages()
	if err != nil {
		return nil, err
	}

	chiRouter := chi.NewRouter()
	useBaseMiddleware(chiRouter, router.config.AcceptedOrigins)

	handlers := initializeHandlers(database, router.config.MediaURL, pages, router.startupTime)

	setupPageRoutes(chiRouter, handlers)
	setupServiceRoutes(chiRouter, handlers)
	setupMediaRoutes(chiRouter, router.config.MediaURL, router.config.MediaDir)

	return chiRouter, nil
}

// useBaseMiddleware installs the stack every route shares. Instrumentation wraps panic
// recovery so a recovered panic is counted with the 500 it turns into.
func useBaseMiddleware(r chi.Router, acceptedOrigins []string) {
	r.Use(instrumentRequests)
	r.Use(LogInternalServerErrors)
	r.Use(middleware.StripSlashes)

	r.Use(CORSCheckMiddleware(acceptedOrigins))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: acceptedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
