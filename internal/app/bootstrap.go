package app

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"pharmaflux/internal/config"
	"pharmaflux/internal/delivery/http/middleware"
	"pharmaflux/internal/delivery/http/routes"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)

	registry := routes.NewRegistry(routes.Deps{
		Config:   c.Config,
		DB:       c.DB,
		Cache:    c.Cache,
		Geocoder: c.Geocoder,
		Mailer:   c.Mailer,
		Tasks:    c.Dispatcher,
		Matcher:  c.Matcher,
		Hub:      c.Hub,
		Logger:   c.Logger,
	})
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app. The returned cleanup
// stops the dispatcher and closes the pool and cache.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	app := New(container)
	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
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
