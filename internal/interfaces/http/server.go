package http

import (
	"errors"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

// AppOptions opciones del servidor sandbox.
type AppOptions struct {
	Name        string
	SwaggerFile string // vacío o inexistente = sin /docs
}

// NewApp arma la aplicación Fiber con middlewares, /health y las rutas /gt.
func NewApp(opts AppOptions, deps RouterDeps, log *logger.Logger) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}
	deps.Log = log

	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if opts.SwaggerFile != "" {
		if _, err := os.Stat(opts.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: opts.SwaggerFile,
				Path:     "docs",
				Title:    "Bodega sandbox",
			}))
		} else {
			log.Warn().Str("file", opts.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.Name})
	})

	Router(app, deps)
	return app
}

// errorHandler responde siempre {msg}; rutas inexistentes salen con el mensaje de Fiber.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return message(c, fe.Code, fe.Message)
	}
	return message(c, fiber.StatusInternalServerError, MsgInternal)
}
