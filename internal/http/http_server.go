package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/codelab-2025.net/internal/config"
	"gitlab.com/codelab-2025.net/internal/core/ports/primary"
	"gitlab.com/codelab-2025.net/internal/core/services/execution"
	"gitlab.com/codelab-2025.net/internal/core/services/runtime"
	"gitlab.com/codelab-2025.net/internal/handlers"
	"gitlab.com/codelab-2025.net/internal/handlers/exercises"
	"gitlab.com/codelab-2025.net/internal/handlers/runtimes"
)

type ServiceProvider struct {
	executionService execution.IExecutionService
	catalogService   runtime.ICatalogService
}

func NewServiceProvider(
	executionService execution.IExecutionService,
	catalogService runtime.ICatalogService,
) *ServiceProvider {
	return &ServiceProvider{
		executionService: executionService,
		catalogService:   catalogService,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	jwtConfig       *config.JwtConfig
	logger          primary.Logger
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, jwtConfig *config.JwtConfig, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		jwtConfig:       jwtConfig,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()

	// Liveness probe stays outside authentication.
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(handlers.New(s.jwtConfig).JWTMiddleware)

	exercises.
		NewExerciseHandler(s.ServiceProvider.executionService, s.logger).
		RegisterRoutes(api)
	runtimes.
		NewRuntimeHandler(s.ServiceProvider.catalogService, s.logger).
		RegisterRoutes(api)

	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	// Set up server
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}
