package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-app/internal/application/auth"
	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/application/validation"
)

// Mensajes de auth.
const (
	MsgInvalidBody = "Cuerpo de la petición inválido"
	MsgLoginError  = "Error al iniciar sesión"
	MsgProfileErr  = "Error al obtener el perfil"
)

// AuthHandler maneja login y perfil.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	val *validation.Validator
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc, val: validation.New()}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.MessageResponse
// @Router       /gt/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return message(c, fiber.StatusBadRequest, MsgInvalidBody)
	}
	if err := h.val.Check(in, nil); err != nil {
		return writeError(c, err, MsgLoginError)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return writeError(c, err, MsgLoginError)
	}
	return c.JSON(out)
}

// Profile godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserRecord
// @Failure      401  {object}  dto.MessageResponse
// @Router       /gt/perfil [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(GetUserID(c))
	if err != nil {
		return writeError(c, err, MsgProfileErr)
	}
	return c.JSON(out)
}
