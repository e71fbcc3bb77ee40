package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wrenfall/StarstreamBot_Go/internal/database"
	"github.com/wrenfall/StarstreamBot_Go/internal/handler"
	"github.com/wrenfall/StarstreamBot_Go/internal/ledger"
	"github.com/wrenfall/StarstreamBot_Go/internal/logger"
	"github.com/wrenfall/StarstreamBot_Go/internal/metrics"
	"github.com/wrenfall/StarstreamBot_Go/internal/shop"
)

// Options configures the HTTP server.
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	AllowedOrigins []string
}

type Server struct {
	httpServer    *http.Server
	dbPool        database.Pool
	ledgerService ledger.Service
	shopService   shop.Service
}

// NewServer creates a new Server instance
func NewServer(opts Options, dbPool database.Pool, ledgerService ledger.Service, shopService shop.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", HeaderAPIKey},
		MaxAge:         300,
	}))
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/ledger", func(r chi.Router) {
			r.Get("/balance", handler.HandleGetBalance(ledgerService))
			r.Get("/leaderboard", handler.HandleLeaderboard(ledgerService))
			r.Post("/grant", handler.HandleGrant(ledgerService))
			r.Post("/confiscate", handler.HandleConfiscate(ledgerService))
			r.Post("/transfer", handler.HandleTransfer(ledgerService))
		})

		r.Route("/shop", func(r chi.Router) {
			r.Get("/items", handler.HandleListItems(shopService))
			r.Get("/item", handler.HandleGetItem(shopService))
			r.Post("/items", handler.HandleAddItem(shopService))
			r.Post("/items/remove", handler.HandleRemoveItem(shopService))
			r.Post("/purchase", handler.HandlePurchase(shopService))
			r.Post("/refund", handler.HandleRefund(shopService))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:        dbPool,
		ledgerService: ledgerService,
		shopService:   shopService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics probes would drown out real traffic
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
