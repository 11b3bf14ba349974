package http

import (
	"strings"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/content-service/internal/api/http/handlers"
	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Admin    *handlers.AdminHandler
	About    *handlers.AboutHandler
	Team     *handlers.TeamHandler
	Projects *handlers.ProjectHandler
	Services *handlers.OfferingHandler
	Careers  *handlers.CareerHandler
	Blog     *handlers.BlogHandler
	Contact  *handlers.ContactHandler

	AuthMiddleware *auth.AuthMiddleware
	ContactLimit   fiber.Handler
	Metrics        *observability.Metrics
	CORSOrigins    []string
	Tracing        bool
}

// RegisterEdgeMiddlewares installs request id, CORS and tracing. They run
// before the error handling chain.
func RegisterEdgeMiddlewares(app *fiber.App, cfg RouteConfig) {
	app.Use(requestid.New(requestid.Config{ContextKey: observability.RequestIDLocalKey}))
	origins := strings.Join(cfg.CORSOrigins, ",")
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		// credentials cannot be combined with a wildcard origin
		AllowCredentials: origins != "" && origins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
	}))
	if cfg.Tracing {
		app.Use(otelfiber.Middleware())
	}
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if reg := cfg.Metrics.Registry(); reg != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	admin := cfg.AuthMiddleware.Handle
	requireAdmin := auth.RequireAdmin()

	adminGroup := api.Group("/admin")
	adminGroup.Post("/login", cfg.Admin.Login)
	adminGroup.Post("/refresh", cfg.Admin.Refresh)
	adminGroup.Post("/logout", cfg.Admin.Logout)
	adminGroup.Get("/protected", admin, requireAdmin, cfg.Admin.Protected)

	contactLimit := cfg.ContactLimit
	if contactLimit == nil {
		contactLimit = func(c *fiber.Ctx) error { return c.Next() }
	}
	api.Get("/test", cfg.Health.Smoke)
	api.Post("/test", contactLimit, cfg.Contact.Submit)

	about := api.Group("/about")
	about.Get("/", cfg.About.Get)
	about.Post("/", admin, requireAdmin, cfg.About.Save)
	about.Delete("/", admin, requireAdmin, cfg.About.Delete)

	registerCRUD(api.Group("/team"), admin, requireAdmin, cfg.Team)
	registerCRUD(api.Group("/projects"), admin, requireAdmin, cfg.Projects)
	registerCRUD(api.Group("/services"), admin, requireAdmin, cfg.Services)
	registerCRUD(api.Group("/careers"), admin, requireAdmin, cfg.Careers)
	registerCRUD(api.Group("/blog"), admin, requireAdmin, cfg.Blog)
}

type crudHandler interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

func registerCRUD(group fiber.Router, gate, requireAdmin fiber.Handler, h crudHandler) {
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	group.Post("/", gate, requireAdmin, h.Create)
	group.Put("/:id", gate, requireAdmin, h.Update)
	group.Delete("/:id", gate, requireAdmin, h.Delete)
}
