package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hostel-cms/complaint-service/internal/api/http/handlers"
	"github.com/hostel-cms/complaint-service/internal/auth"
	"github.com/hostel-cms/complaint-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Complaints     *handlers.ComplaintsHandler
	Announcements  *handlers.AnnouncementsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	api.Get("/health", cfg.Health.API)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	requireStudent := auth.RequireRoleHandler(domain.RoleStudent)
	requireWarden := auth.RequireRoleHandler(domain.RoleWarden)

	complaints := api.Group("/complaints", cfg.AuthMiddleware.Handle)
	complaints.Get("/", cfg.Complaints.List)
	complaints.Get("/stats/overview", cfg.Complaints.Stats)
	// Older clients reach the bulletin through the complaints prefix.
	complaints.Get("/announcements/all", cfg.Announcements.List)
	complaints.Post("/announcements", requireWarden, cfg.Announcements.Create)
	complaints.Get("/:id", cfg.Complaints.Get)
	complaints.Post("/", requireStudent, cfg.Complaints.Create)
	complaints.Patch("/:id/status", requireWarden, cfg.Complaints.UpdateStatus)
	complaints.Delete("/:id", cfg.Complaints.Delete)

	announcements := api.Group("/announcements", cfg.AuthMiddleware.Handle)
	announcements.Get("/", cfg.Announcements.List)
	announcements.Post("/", requireWarden, cfg.Announcements.Create)

	users := api.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/students", requireWarden, cfg.Users.Students)
	users.Get("/profile", cfg.Users.Profile)
}
