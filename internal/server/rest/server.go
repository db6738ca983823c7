// Package rest exposes the marketpulse HTTP API: registration, token login,
// the bearer guard and the gated market-data and weather passthroughs.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/marketpulse/internal/logging"
	"github.com/dmitrijs2005/marketpulse/internal/server/config"
	"github.com/dmitrijs2005/marketpulse/internal/server/models"
	"github.com/dmitrijs2005/marketpulse/internal/server/services"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UserService is the account side of the API.
type UserService interface {
	Register(ctx context.Context, userName, password string) (*models.User, error)
	Login(ctx context.Context, userName, password string) (*services.Token, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	Ping(ctx context.Context) error
}

// FeedService forwards the gated requests to the third-party APIs.
type FeedService interface {
	MarketNews(ctx context.Context, query string) ([]json.RawMessage, error)
	CurrentWeather(ctx context.Context, lat, lon float64) (json.RawMessage, error)
}

type Server struct {
	address     string
	staticDir   string
	corsOrigins []string

	users   UserService
	feeds   FeedService
	logger  logging.Logger
	metrics *metrics

	router *mux.Router
}

func NewServer(cfg *config.Config, l logging.Logger, us UserService, fs FeedService) *Server {
	s := &Server{
		address:     cfg.EndpointAddrHTTP,
		staticDir:   cfg.StaticDir,
		corsOrigins: cfg.CORSAllowedOrigins,
		users:       us,
		feeds:       fs,
		logger:      l.With("module", "http_server"),
		metrics:     newMetrics(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReadyz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/token", s.handleToken).Methods(http.MethodPost)

	r.HandleFunc("/me", s.requireAuth(s.handleMe)).Methods(http.MethodGet)
	r.HandleFunc("/market-data", s.requireAuth(s.handleMarketData)).Methods(http.MethodGet)
	r.HandleFunc("/weather", s.requireAuth(s.handleWeather)).Methods(http.MethodGet)

	if s.staticDir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir)))
		r.PathPrefix("/static/").Handler(fs).Methods(http.MethodGet, http.MethodHead)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "resource not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	return r
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.withRequestLogging(s.withCORS(s.router)))
}

// ObserveUpstream counts one upstream call; status 0 means transport failure.
func (s *Server) ObserveUpstream(service string, status int) {
	s.metrics.observeUpstream(service, status)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	select {
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
