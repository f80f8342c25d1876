package http

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/pkg/jwt"
)

// Locals keys para los claims del token en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// Mensajes del middleware.
const (
	MsgMissingToken = "No hay token, permiso no válido"
	MsgInvalidToken = "Token no válido"
	MsgMissingRole  = "El token no incluye un rol"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID, email y rol a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return message(c, fiber.StatusUnauthorized, MsgMissingToken)
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return message(c, fiber.StatusUnauthorized, MsgInvalidToken)
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return message(c, fiber.StatusUnauthorized, MsgMissingToken)
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return message(c, fiber.StatusUnauthorized, MsgInvalidToken)
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireRole deja pasar solo a los roles indicados. Debe ir después de AuthMiddleware.
// Un token sin rol es 401; un rol no permitido es 403 con el mensaje fijo de acceso denegado.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return message(c, fiber.StatusUnauthorized, MsgMissingRole)
		}
		if !slices.Contains(roles, role) {
			return message(c, fiber.StatusForbidden, domain.MsgForbidden)
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

func GetEmail(c *fiber.Ctx) string {
	return localString(c, LocalEmail)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
