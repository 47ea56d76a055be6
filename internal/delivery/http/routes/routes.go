package routes

import (
	"talentboard/internal/delivery/http/handler"
	"talentboard/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Profile  *handler.ProfileHandler
	Projects *handler.ProjectHandler
	Posts    *handler.PostHandler

	AuthMiddleware *middleware.AuthMiddleware
	// Metrics is mounted at /metrics outside the API prefix when set.
	Metrics fiber.Handler
}

func (r *Registry) Register(app *fiber.App, prefix string) {
	if app == nil {
		return
	}

	if r.Metrics != nil {
		app.Get("/metrics", r.Metrics)
	}
	r.registerAPI(app.Group(prefix))
}

func (r *Registry) registerAPI(api fiber.Router) {
	auth := r.AuthMiddleware.Middleware()

	r.Health.RegisterRoutes(api)
	r.Auth.RegisterRoutes(api)
	r.Profile.RegisterRoutes(api, auth)
	r.Projects.RegisterRoutes(api, auth)
	r.Posts.RegisterRoutes(api, auth)
}
