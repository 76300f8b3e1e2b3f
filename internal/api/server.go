package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"webtalk/config"
	"webtalk/infrastructure"
	"webtalk/internal/chat"
	"webtalk/internal/messaging"
	"webtalk/internal/presence"
	"webtalk/internal/user"
)

const shutdownTimeout = 10 * time.Second

type Handlers struct {
	User      *user.JSONHandler
	Chat      *chat.JSONHandler
	Messaging *messaging.JSONHandler
	Presence  *presence.JSONHandler
}

type Server struct {
	router *mux.Router
	srv    *http.Server
	logger *zap.Logger
}

func NewServer(cfg config.HTTPConfig, handlers Handlers, logger *zap.Logger) *Server {
	router := mux.NewRouter()

	server := &Server{
		router: router,
		logger: logger.Named("http"),
	}
	server.setupRoutes(handlers)

	server.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           withMiddleware(cfg, server.logger, router),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server
}

// withMiddleware wraps next in the request chain. Logger sits outside Recoverer
// so a recovered panic is logged with its 500.
func withMiddleware(cfg config.HTTPConfig, logger *zap.Logger, next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", ActorHeader},
	})

	handler := ActorMiddleware(next)
	handler = TimeoutMiddleware(cfg.RequestTimeout)(handler)
	handler = RateLimitMiddleware(cfg.RateLimitRPS)(handler)
	handler = Recoverer(logger)(handler)
	handler = Logger(logger)(handler)
	return c.Handler(handler)
}

func (s *Server) setupRoutes(h Handlers) {
	s.router.HandleFunc("/health", s.healthCheck).Methods("GET")

	user.SetupJSONRoutes(s.router, h.User)
	chat.SetupJSONRoutes(s.router, h.Chat)
	messaging.SetupJSONRoutes(s.router, h.Messaging)
	presence.SetupJSONRoutes(s.router, h.Presence)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		infrastructure.WriteStatus(w, http.StatusNotFound, infrastructure.KindNotFound, "Route not found")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		infrastructure.WriteStatus(w, http.StatusMethodNotAllowed, infrastructure.KindValidation, "Method not allowed")
	})
}

// Handler returns the fully wrapped handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down HTTP server")
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	infrastructure.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
