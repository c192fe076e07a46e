package app

import (
	"context"
	"fmt"
	"strings"

	"skill-match/internal/config"
	"skill-match/internal/delivery/http/handler"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)

	var cachePinger handler.Pinger
	if c.Cache != nil {
		cachePinger = c.Cache
	}
	routes.NewRegistry(routes.Deps{
		DB:       c.DB,
		Cache:    cachePinger,
		Matching: c.Matching,
		Fill:     c.Fill,
		Reports:  c.Reports,
		JWT:      c.JWT,
		Hub:      c.Hub,
		Metrics:  c.Metrics,
		Logger:   c.Logger,
	}).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap opens every backing resource and returns the HTTP app with a
// cleanup that releases them.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	if err := cfg.Validate(config.NeedDatabase, config.NeedJWT); err != nil {
		return nil, nil, err
	}

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	accessLog := middleware.NewAccessLogMiddleware(c.Logger.Named("http"), c.Metrics)
	app.Use(accessLog.Middleware())

	errMw := middleware.NewErrorMiddleware(c.Logger.Named("http"))
	app.Use(errMw.Middleware())
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
