package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/content-service/internal/observability"
)

// ServerConfig assembles everything NewServer needs.
type ServerConfig struct {
	AppName     string
	BodyLimit   int
	Middlewares MiddlewareConfig
	Routes      RouteConfig
}

// NewServer builds the fiber application with the full middleware chain and
// every route registered.
func NewServer(cfg ServerConfig, logger *zap.Logger, metrics *observability.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(logger, metrics, cfg.Middlewares.ShowStacks),
	})

	cfg.Routes.Metrics = metrics
	RegisterEdgeMiddlewares(app, cfg.Routes)
	RegisterMiddlewares(app, logger, metrics, cfg.Middlewares)
	RegisterRoutes(app, cfg.Routes)
	return app
}
