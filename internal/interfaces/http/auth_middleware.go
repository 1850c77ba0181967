package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/pkg/jwt"
)

// Local key para el operador autenticado en Fiber.
const LocalOperator = "operator"

// AuthMiddleware valida el Bearer Token JWT y deja el Operator en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalOperator, entity.Operator{
			ID:         claims.UserID,
			EmployeeID: claims.EmployeeID,
			Name:       claims.Name,
			IsAdmin:    claims.IsAdmin,
		})
		return c.Next()
	}
}

// GetOperator devuelve el operador del contexto (después del middleware de auth).
func GetOperator(c *fiber.Ctx) entity.Operator {
	v := c.Locals(LocalOperator)
	if v == nil {
		return entity.Operator{}
	}
	op, _ := v.(entity.Operator)
	return op
}

// RequireAdmin corta con 403 si el operador no tiene capacidad de administrador.
// Las operaciones destructivas (anular, eliminar artículo, renombrar piso) van
// detrás de este middleware; el núcleo no vuelve a verificar el rol.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		op := GetOperator(c)
		if op.ID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
		}
		if !op.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere administrador"})
		}
		return c.Next()
	}
}
