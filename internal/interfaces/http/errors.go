package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
)

// respondDomainError mapea los sentinelas del dominio a códigos HTTP. Los
// handlers atienden antes sus casos con payload propio (stock insuficiente).
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrMarkerLocation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MARKER_LOCATION", Message: "la ubicación es un marcador visual, no admite movimientos"})
	case errors.Is(err, domain.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ITEM_NOT_FOUND", Message: "artículo no encontrado"})
	case errors.Is(err, domain.ErrLocationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "LOCATION_NOT_FOUND", Message: "ubicación no encontrada"})
	case errors.Is(err, domain.ErrUnknownAssembly):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_ASSEMBLY", Message: "el código no tiene lista de materiales"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyVoided):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_VOIDED", Message: "la transacción ya fue anulada"})
	case errors.Is(err, domain.ErrIrreversibleVoid):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IRREVERSIBLE_VOID", Message: "anular dejaría el inventario en negativo"})
	case errors.Is(err, domain.ErrItemHasStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ITEM_HAS_STOCK", Message: "el artículo aún tiene inventario"})
	case errors.Is(err, domain.ErrNotAComponent):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NOT_A_COMPONENT", Message: "el código no pertenece al ensamble"})
	case errors.Is(err, domain.ErrSessionState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_STATE", Message: "la sesión no admite esta operación en su estado actual"})
	case errors.Is(err, domain.ErrNegativeInventory), errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
