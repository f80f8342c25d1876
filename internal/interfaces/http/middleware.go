package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

// HeaderRequestID lo envía el cliente en cada llamada.
const HeaderRequestID = "X-Request-ID"

// RequestLogger registra método, ruta, estado y duración de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", c.Get(HeaderRequestID)).
			Str("user_id", GetUserID(c)).
			Msg("petición")
		return err
	}
}
