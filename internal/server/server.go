package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/joaopedroldavid-del/finsightai-api/config"
	"github.com/joaopedroldavid-del/finsightai-api/internal/service"
)

// Server owns the HTTP surface of the API.
type Server struct {
	cfg    *config.Config
	svc    *service.AgentService
	router *mux.Router
	http   *http.Server
}

func NewServer(cfg *config.Config, svc *service.AgentService) *Server {
	s := &Server{
		cfg:    cfg,
		svc:    svc,
		router: mux.NewRouter(),
	}
	s.routes()

	handler := requestLogger(corsMiddleware(cfg.CORSOrigins)(s.router))
	s.http = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	s.router.HandleFunc("/info", s.handleInfo).Methods(http.MethodGet)

	health := s.router.PathPrefix("/health").Subrouter()
	health.HandleFunc("/", s.handleHealth).Methods(http.MethodGet)
	health.HandleFunc("", s.handleHealth).Methods(http.MethodGet)
	health.HandleFunc("/agents", s.handleAgentsHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api/v1/agents").Subrouter()
	api.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/status", s.handleAgentStatus).Methods(http.MethodGet)
	api.HandleFunc("/conversations", s.handleCreateConversation).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/conversations/{id}", s.handleGetConversation).Methods(http.MethodGet)
}

// Handler exposes the fully wrapped handler chain, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

func (s *Server) Start() error {
	log.Info().Str("addr", s.cfg.HTTPAddr).Msg("http server listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
