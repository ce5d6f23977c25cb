package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/interfaces"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/usecase"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/logging"
)

// Server routes messaging-platform webhooks and the management API to the
// use case layer. Webhook routes are protected by signature verification;
// the /api routes are expected to sit behind the operator's own perimeter.
type Server struct {
	router        *chi.Mux
	uc            *usecase.UseCases
	repo          interfaces.Repository
	signingSecret string
}

// Options configures the Server
type Options func(*Server)

// WithSigningSecret enables webhook signature verification
func WithSigningSecret(secret string) Options {
	return func(s *Server) {
		s.signingSecret = secret
	}
}

// New creates the HTTP server and wires all routes
func New(uc *usecase.UseCases, repo interfaces.Repository, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
		repo:   repo,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/hooks/slack", func(r chi.Router) {
		if s.signingSecret != "" {
			r.Use(SlackSignatureMiddleware(s.signingSecret))
		}
		r.Post("/command", s.handleSlackCommand)
		r.Post("/interaction", s.handleSlackInteraction)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/metrics", s.handleMetrics)
		r.Post("/roster/run", s.handleRosterRun)

		r.Route("/members", func(r chi.Router) {
			r.Get("/", s.handleMemberList)
			r.Get("/{userID}", s.handleMemberGet)
			r.Put("/{userID}", s.handleMemberPut)
			r.Delete("/{userID}", s.handleMemberDelete)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
