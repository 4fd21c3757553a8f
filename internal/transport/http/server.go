// package http implements the HTTP transport layer for the service.
// It decodes requests, resolves the caller, calls the services and wraps every
// result in the common response envelope.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gumwoo/umc-pr/internal/apperrors"
	"github.com/gumwoo/umc-pr/internal/service"
	"github.com/gumwoo/umc-pr/pkg/logger/sl"
	"github.com/gumwoo/umc-pr/swagger"
)

// compressionLevel is the gzip level used for responses.
const compressionLevel = 6

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Services struct {
	Stores   service.StoreService
	Reviews  service.ReviewService
	Missions service.MissionService
	Users    service.UserService
}

type Options struct {
	AllowedOrigins []string
	UserIDHeader   string
	FallbackUserID int64
	DefaultLimit   int
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	log  *slog.Logger
	db   Pinger
	opts Options

	storeService   service.StoreService
	reviewService  service.ReviewService
	missionService service.MissionService
	userService    service.UserService
}

// NewServer creates a new instance of the HTTP server.
func NewServer(log *slog.Logger, db Pinger, svc Services, opts Options) *Server {
	if opts.UserIDHeader == "" {
		opts.UserIDHeader = "X-User-ID"
	}

	return &Server{
		log:            log,
		db:             db,
		opts:           opts,
		storeService:   svc.Stores,
		reviewService:  svc.Reviews,
		missionService: svc.Missions,
		userService:    svc.Users,
	}
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.RealIP)
	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)
	mux.Use(s.recoverer)
	mux.Use(cors(s.opts.AllowedOrigins, s.opts.UserIDHeader))
	mux.Use(middleware.Compress(compressionLevel))

	mux.NotFound(s.notFound)
	mux.MethodNotAllowed(s.notFound)

	mux.Get("/", s.liveness)
	mux.Get("/healthz", s.health)
	mux.Handle("/metrics", promhttp.Handler())

	swaggerHandler, err := swagger.GetHandler()
	if err != nil {
		s.log.Error("failed to get swagger handler", sl.Err(err))
	} else {
		mux.Mount("/swagger", http.StripPrefix("/swagger", swaggerHandler))
	}

	mux.Route("/api", func(r chi.Router) {
		r.Use(s.principal)

		r.NotFound(s.notFound)
		r.MethodNotAllowed(s.notFound)

		r.Get("/regions", s.ListRegions)
		r.Get("/regions/{regionId}/stores", s.ListRegionStores)
		r.Post("/regions/{regionId}/stores", s.CreateRegionStore)

		r.Post("/stores", s.CreateStore)
		r.Get("/stores/{storeId}", s.GetStore)
		r.Post("/stores/{storeId}/reviews", s.CreateStoreReview)
		r.Get("/stores/{storeId}/reviews", s.ListStoreReviews)
		r.Post("/stores/{storeId}/missions", s.CreateStoreMission)

		r.Post("/reviews", s.CreateReview)
		r.Get("/reviews/my", s.ListMyReviews)
		r.Get("/reviews/store/{storeId}", s.ListStoreReviews)

		r.Post("/missions", s.CreateMission)
		r.Get("/missions/my", s.ListMyChallenges)
		r.Get("/missions/store/{storeId}", s.ListStoreMissions)
		r.Post("/missions/{missionId}/challenges", s.StartChallenge)
		r.Patch("/missions/challenges/{challengeId}/complete", s.CompleteChallenge)

		r.Post("/members/{memberId}/missions/{missionId}/challenge", s.StartMemberChallenge)

		r.Post("/users/signup", s.SignUp)
	})

	return mux
}

func (s *Server) liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.health"

	if err := s.db.Ping(r.Context()); err != nil {
		s.handleServiceError(w, r, op, apperrors.Wrap(apperrors.KindDatabase, err, "database is unreachable", nil))
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.respondError(w, apperrors.New(apperrors.KindResourceNotFound, "route not found",
		map[string]any{"path": r.URL.Path}))
}
