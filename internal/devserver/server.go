// Package devserver is the development backend: a Fiber app implementing the
// API contract the client consumes, backed by gorm. It exists so the client
// can be exercised end to end without the production service.
package devserver

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"

	"auctionhub/internal/config"
	"auctionhub/internal/observability"
)

// Server holds the devserver dependencies and provides handlers.
type Server struct {
	config *config.Config
	db     *gorm.DB
	logger *observability.Logger
	prom   *fiberprometheus.FiberPrometheus
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithMetrics enables the Prometheus middleware. Off by default because the
// collectors register globally, which breaks repeated app construction in
// tests.
func WithMetrics(serviceName string) ServerOption {
	return func(s *Server) { s.prom = fiberprometheus.New(serviceName) }
}

// NewServer wires a devserver around an open database.
func NewServer(cfg *config.Config, db *gorm.DB, logger *observability.Logger, opts ...ServerOption) *Server {
	if logger == nil {
		logger = observability.NewLogger(nil)
	}
	s := &Server{config: cfg, db: db, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// App builds the Fiber application with middleware and routes.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "AuctionHub Dev API",
		BodyLimit: 20 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if s.prom != nil {
		s.prom.RegisterAt(app, "/metrics")
		app.Use(s.prom.Middleware)
	}
	app.Use(s.structuredLogger())

	s.setupRoutes(app)
	return app
}

func (s *Server) setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/", s.HealthCheck)
	api.Get("/categories", s.GetCategories)
	api.Get("/auctions", s.GetAuctions)
	api.Get("/auctions/:id", s.GetAuction)
	api.Post("/bids", s.PlaceBid)
	api.Post("/login", s.Login)
	api.Post("/register", s.Register)

	protected := api.Group("", s.AuthRequired())
	protected.Post("/logout", s.Logout)
	protected.Post("/auctions", s.CreateAuction)
	protected.Post("/upload", s.UploadImage)
}

// HealthCheck reports database reachability.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(c.Context()); err != nil {
		dbStatus = "unhealthy"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"status": dbStatus,
		"checks": fiber.Map{"database": dbStatus},
		"time":   time.Now(),
	})
}

// respondError writes the error body shape every client error path expects.
func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// structuredLogger logs each request through slog after it is handled.
func (s *Server) structuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := []any{
			slog.Int("status", c.Response().StatusCode()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
		}
		if uid := c.Locals("userID"); uid != nil {
			fields = append(fields, slog.Any("user_id", uid))
		}
		if rid := c.Locals("requestid"); rid != nil {
			fields = append(fields, slog.Any("request_id", rid))
		}

		if err != nil {
			fields = append(fields, slog.String("error", err.Error()))
			s.logger.Error("request failed", fields...)
		} else {
			s.logger.Info("request processed", fields...)
		}
		return err
	}
}
