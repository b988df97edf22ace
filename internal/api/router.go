package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hugh/orgroster/internal/api/dto"
	"github.com/hugh/orgroster/internal/api/handlers"
	"github.com/hugh/orgroster/internal/api/middleware"
	"github.com/hugh/orgroster/internal/api/respond"
	"github.com/hugh/orgroster/internal/api/validation"
	"github.com/hugh/orgroster/internal/auth"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Logger         *slog.Logger
	AuthService    *auth.Service
	Employees      handlers.EmployeeStore
	Teams          handlers.TeamStore
	Assignments    handlers.AssignmentStore
	Validator      *validation.Validator
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	validate := cfg.Validator
	if validate == nil {
		validate = validation.New(validation.DefaultRegion)
	}

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	authHandler := handlers.NewAuthHandler(cfg.AuthService, validate, cfg.Logger)
	employeeHandler := handlers.NewEmployeeHandler(cfg.Employees, validate, cfg.Logger)
	teamHandler := handlers.NewTeamHandler(cfg.Teams, validate, cfg.Logger)
	assignmentHandler := handlers.NewAssignmentHandler(cfg.Assignments, validate, cfg.Logger)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Route not found", Code: "not_found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusMethodNotAllowed, dto.ErrorResponse{Error: "Method not allowed", Code: "method_not_allowed"})
	})

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.AuthService, cfg.Logger))

		r.Get("/me", authHandler.Me)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.List)
			r.Post("/", employeeHandler.Create)
			r.Get("/{id}", employeeHandler.Get)
			r.Put("/{id}", employeeHandler.Update)
			r.Delete("/{id}", employeeHandler.Delete)
			r.Get("/{id}/teams", assignmentHandler.EmployeeTeams)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.List)
			r.Post("/", teamHandler.Create)
			r.Get("/{id}", teamHandler.Get)
			r.Put("/{id}", teamHandler.Update)
			r.Delete("/{id}", teamHandler.Delete)
			r.Post("/{id}/assign", assignmentHandler.Assign)
			r.Delete("/{id}/unassign", assignmentHandler.Unassign)
			r.Get("/{id}/members", assignmentHandler.Members)
		})

		r.Get("/assigned_members", assignmentHandler.List)
	})

	return &Router{r}
}
