package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fincas-api/internal/application/dto"
	"github.com/jhoicas/fincas-api/pkg/jwt"
)

// Locals keys para UserID y CompanyID en Fiber.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
)

// AuthMiddleware valida el Bearer Token JWT y deja UserID y CompanyID en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, code, msg := bearerToken(c.Get(fiber.HeaderAuthorization))
		if code != "" {
			return unauthorized(c, code, msg)
		}
		userID, companyID, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalCompanyID, companyID)
		return c.Next()
	}
}

// bearerToken extrae el token de "Bearer <token>". Si falla devuelve código y mensaje de error.
func bearerToken(header string) (token, code, msg string) {
	if header == "" {
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	scheme, rest, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	if token = strings.TrimSpace(rest); token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// RequireCompany corta la petición si el token no trae administración. Va DESPUÉS de AuthMiddleware.
func RequireCompany() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetCompanyID(c) == "" {
			return unauthorized(c, "UNAUTHORIZED", "company_id no encontrado en el token")
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetCompanyID devuelve el CompanyID del contexto (después del middleware de auth).
func GetCompanyID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalCompanyID).(string)
	return s
}
