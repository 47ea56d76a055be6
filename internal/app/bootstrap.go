package app

import (
	"fmt"
	"log"
	"strings"

	"talentboard/internal/config"
	"talentboard/internal/delivery/http/handler"
	"talentboard/internal/delivery/http/middleware"
	"talentboard/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application over an initialised container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

// Order matters: the access log sees the status the error middleware
// rendered, and metrics sit inside so they see the handler's error.
func registerGlobalMiddleware(app *fiber.App, c *Container) {
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.CORS())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	if c.Metrics != nil {
		app.Use(c.Metrics.Middleware())
	}
}

func registerRoutes(app *fiber.App, c *Container) {
	reg := &routes.Registry{
		Health:         handler.NewHealthHandler(c.Store),
		Auth:           handler.NewAuthHandler(c.Auth, c.Config.Identity.AnonKey),
		Profile:        handler.NewProfileHandler(c.Profiles),
		Projects:       handler.NewProjectHandler(c.Projects),
		Posts:          handler.NewPostHandler(c.Posts),
		AuthMiddleware: middleware.NewAuthMiddleware(c.Identity),
	}
	if c.Metrics != nil {
		reg.Metrics = c.Metrics.Handler()
	}
	reg.Register(app, c.Config.App.APIPrefix)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
