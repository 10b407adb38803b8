package api

import (
	"net/http"
	"time"

	"fittrack/internal/api/handler"
	"fittrack/internal/api/middleware"
	"fittrack/internal/app/service"
	"fittrack/internal/common/security"
	"fittrack/internal/domain/repository"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	workoutService *service.WorkoutService,
	userRepo repository.UserRepository,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Token verification for the whole tree; the Authorization header is
	// accepted with or without the "Bearer " prefix. Claims end up in the
	// request context and middleware.Authenticator enforces them per group.
	r.Use(jwtauth.Verify(security.TokenAuth, security.TokenFromAuthHeader))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		workoutHandler := handler.NewWorkoutHandler(workoutService)

		// Registration and login are the only unauthenticated endpoints.
		api.Group(func(public chi.Router) {
			authHandler.RegisterPublicRoutes(public)
		})

		api.Group(func(private chi.Router) {
			private.Use(middleware.Authenticator(userRepo))
			authHandler.RegisterProtectedRoutes(private)
			private.Route("/workout", workoutHandler.RegisterRoutes)
		})
	})

	return r
}
