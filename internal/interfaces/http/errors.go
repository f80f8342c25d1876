package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/domain"
)

// MsgInternal mensaje genérico para fallas no esperadas.
const MsgInternal = "Error interno del servidor"

// statusFor traduce un error de dominio a código HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError responde {msg}. Los errores internos no exponen su detalle.
func writeError(c *fiber.Ctx, err error, fallback string) error {
	status := statusFor(err)
	msg := fallback
	if status != fiber.StatusInternalServerError {
		msg = domain.UserMessage(err, fallback)
	}
	if msg == "" {
		msg = MsgInternal
	}
	return c.Status(status).JSON(dto.MessageResponse{Msg: msg})
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.MessageResponse{Msg: msg})
}
