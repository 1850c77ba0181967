package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/auth"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/ledger"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// MovementHandler maneja movimientos simples IN/OUT, el historial y la anulación.
type MovementHandler struct {
	movementUC *ledger.MovementUseCase
	voidUC     *ledger.VoidUseCase
	historyUC  *ledger.HistoryUseCase
	authUC     *auth.UseCase
}

// NewMovementHandler construye el handler de movimientos.
func NewMovementHandler(
	movementUC *ledger.MovementUseCase,
	voidUC *ledger.VoidUseCase,
	historyUC *ledger.HistoryUseCase,
	authUC *auth.UseCase,
) *MovementHandler {
	return &MovementHandler{movementUC: movementUC, voidUC: voidUC, historyUC: historyUC, authUC: authUC}
}

// Submit godoc
// @Summary      Registrar movimiento simple IN/OUT
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitMovementRequest  true  "type, barcode, location_code, floor (opcional), quantity, ref_order"
// @Success      201   {object}  dto.SubmitMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newQty, err := h.movementUC.Submit(c.Context(), GetOperator(c), ledger.MovementInput{
		Type:         in.Type,
		Barcode:      in.Barcode,
		LocationCode: in.LocationCode,
		Floor:        in.Floor,
		Quantity:     in.Quantity,
		RefOrder:     in.RefOrder,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SubmitMovementResponse{NewQuantity: newQty})
}

// List godoc
// @Summary      Historial de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        include_deleted  query  bool  false  "incluir transacciones anuladas (default true)"
// @Param        limit            query  int   false  "máximo de filas (default 200)"
// @Param        offset           query  int   false  "desplazamiento"
// @Success      200  {array}  dto.TransactionDTO
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	includeDeleted := c.QueryBool("include_deleted", true)
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)
	views, err := h.historyUC.ListMovements(includeDeleted, limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.TransactionDTO, 0, len(views))
	for _, v := range views {
		out = append(out, transactionDTO(v))
	}
	return c.JSON(out)
}

// Void godoc
// @Summary      Anular una transacción (solo administrador, pide contraseña)
// @Description  Revierte el efecto del movimiento en el inventario y marca la
// @Description  fila como anulada. Irreversible.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID de la transacción"
// @Param        body  body  dto.VoidRequest  true  "password del administrador"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/void [post]
func (h *MovementHandler) Void(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.VoidRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	op := GetOperator(c)
	if err := h.authUC.VerifyPassword(op, in.Password); err != nil {
		if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "BAD_PASSWORD", Message: "contraseña incorrecta"})
		}
		return respondDomainError(c, err)
	}
	if err := h.voidUC.Void(c.Context(), op, id); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "transacción anulada"})
}

func transactionDTO(v *entity.TransactionView) dto.TransactionDTO {
	return dto.TransactionDTO{
		ID:           v.ID,
		Type:         v.Type,
		Barcode:      v.Barcode,
		ItemName:     v.ItemName,
		LocationCode: v.LocationCode,
		Floor:        v.Floor,
		Quantity:     v.Quantity,
		RefOrder:     v.RefOrder,
		Timestamp:    v.CreatedAt,
		OperatorName: v.OperatorName,
		IsDeleted:    v.IsDeleted,
		DeleterName:  v.DeleterName,
	}
}
