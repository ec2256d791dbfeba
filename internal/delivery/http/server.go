package http

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/homevalue/backend/internal/logging"
	"github.com/homevalue/backend/internal/metrics"
)

// NewApp builds the Fiber application with middleware and routes
func NewApp(handler *Handler, allowOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "House Price API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: customErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	SetupRoutes(app, handler)

	return app
}

// requestLogger logs each request and records API metrics. Errors are rendered
// here so the final status code is known.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if handlerErr := c.App().Config().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		latency := time.Since(start)
		metrics.RecordAPIRequest(c.Method(), c.Route().Path, status, latency)

		event := logging.Info()
		if status >= fiber.StatusInternalServerError {
			event = logging.Error()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Str("request_id", requestID(c)).
			Msg("request")

		return nil
	}
}
