package server

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"notepocket/internal/bootstrap"
	"notepocket/internal/config"
	"notepocket/internal/pkg/serverutils"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // notes are short text
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type",
	}))

	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	// No store data is served before hydration completes.
	api.Use(readinessGate(c))

	c.NoteController.RegisterRoutes(api)
	c.EditorController.RegisterRoutes(api)
	c.SettingsController.RegisterRoutes(api)
}

// readinessGate answers 503 until every hydrated store has released its
// readiness flag, so clients never see a stale default state.
func readinessGate(c *bootstrap.Container) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !c.Ready() {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(
				serverutils.ErrorResponse(fiber.StatusServiceUnavailable, "Stores are still loading"))
		}
		return ctx.Next()
	}
}
