package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/bom"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
)

// BomHandler maneja el registro de BOM y la sesión de salida por ensamble.
type BomHandler struct {
	registryUC *bom.RegistryUseCase
	outboundUC *bom.OutboundUseCase
	sessions   *bom.SessionStore
}

// NewBomHandler construye el handler de BOM.
func NewBomHandler(registryUC *bom.RegistryUseCase, outboundUC *bom.OutboundUseCase, sessions *bom.SessionStore) *BomHandler {
	return &BomHandler{registryUC: registryUC, outboundUC: outboundUC, sessions: sessions}
}

// errNoSession señala que el operador no tiene sesión de salida activa.
var errNoSession = errors.New("no hay sesión de salida activa")

func respondSessionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errNoSession) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "no hay sesión de salida activa"})
	}
	return respondDomainError(c, err)
}

// ListAssemblies godoc
// @Summary      Buscar ensambles con componentes y stock disponible
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "subcadena del código principal; vacío lista todos"
// @Success      200  {array}  bom.AssemblyView
// @Router       /api/bom [get]
func (h *BomHandler) ListAssemblies(c *fiber.Ctx) error {
	views, err := h.registryUC.ListAssemblies(c.Query("q"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(views)
}

// ImportBOM godoc
// @Summary      Importar listas de materiales en bloque
// @Description  Reemplaza las líneas de cada main_barcode presente en la carga
// @Description  (delete-then-insert) dentro de una sola transacción.
// @Tags         bom
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportBomRequest  true  "bom_data"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bom/import [post]
func (h *BomHandler) ImportBOM(c *fiber.Ctx) error {
	var in dto.ImportBomRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rows := make([]bom.LineInput, 0, len(in.BomData))
	for _, line := range in.BomData {
		rows = append(rows, bom.LineInput{
			MainBarcode:      line.MainBarcode,
			ComponentBarcode: line.ComponentBarcode,
			RequiredQty:      line.RequiredQty,
		})
	}
	count, err := h.registryUC.ImportBOM(c.Context(), rows)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"imported": count})
}

// StartOutbound godoc
// @Summary      Iniciar sesión de salida por BOM
// @Description  Carga las líneas del ensamble con la foto de stock por
// @Description  componente y fija el número de sets. Reemplaza cualquier sesión
// @Description  previa del operador.
// @Tags         bom
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartOutboundRequest  true  "main_barcode, sets"
// @Success      201   {object}  dto.OutboundSessionDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bom/outbound/start [post]
func (h *BomHandler) StartOutbound(c *fiber.Ctx) error {
	var in dto.StartOutboundRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var out dto.OutboundSessionDTO
	err := h.sessions.Do(GetOperator(c).ID, func(current *bom.OutboundSession) (*bom.OutboundSession, error) {
		session, err := h.outboundUC.StartSession(in.MainBarcode, in.Sets)
		if err != nil {
			return current, err
		}
		out = sessionDTO(session)
		return session, nil
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetSession godoc
// @Summary      Estado de la sesión de salida activa del operador
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OutboundSessionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bom/outbound/session [get]
func (h *BomHandler) GetSession(c *fiber.Ctx) error {
	var out dto.OutboundSessionDTO
	err := h.sessions.Do(GetOperator(c).ID, func(current *bom.OutboundSession) (*bom.OutboundSession, error) {
		if current == nil {
			return nil, errNoSession
		}
		out = sessionDTO(current)
		return current, nil
	})
	if err != nil {
		return respondSessionError(c, err)
	}
	return c.JSON(out)
}

// StagePick godoc
// @Summary      Apilar una toma tentativa en la sesión activa
// @Tags         bom
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StagePickRequest  true  "barcode, location_code, quantity"
// @Success      200   {object}  dto.OutboundSessionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bom/outbound/pick [post]
func (h *BomHandler) StagePick(c *fiber.Ctx) error {
	var in dto.StagePickRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var out dto.OutboundSessionDTO
	err := h.sessions.Do(GetOperator(c).ID, func(current *bom.OutboundSession) (*bom.OutboundSession, error) {
		if current == nil {
			return nil, errNoSession
		}
		if err := current.StagePick(in.Barcode, in.LocationCode, in.Quantity); err != nil {
			return current, err
		}
		out = sessionDTO(current)
		return current, nil
	})
	if err != nil {
		return respondSessionError(c, err)
	}
	return c.JSON(out)
}

// SkipComponent godoc
// @Summary      Aceptar el faltante de un componente
// @Description  Marca el componente como cubierto sin tomas: el commit no
// @Description  descuenta nada de él.
// @Tags         bom
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SkipComponentRequest  true  "barcode"
// @Success      200   {object}  dto.OutboundSessionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bom/outbound/skip [post]
func (h *BomHandler) SkipComponent(c *fiber.Ctx) error {
	var in dto.SkipComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var out dto.OutboundSessionDTO
	err := h.sessions.Do(GetOperator(c).ID, func(current *bom.OutboundSession) (*bom.OutboundSession, error) {
		if current == nil {
			return nil, errNoSession
		}
		if err := current.SkipComponent(in.Barcode); err != nil {
			return current, err
		}
		out = sessionDTO(current)
		return current, nil
	})
	if err != nil {
		return respondSessionError(c, err)
	}
	return c.JSON(out)
}

// CancelOutbound godoc
// @Summary      Cancelar la sesión de salida activa
// @Description  Descarta todas las tomas apiladas sin efecto en el inventario.
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/bom/outbound/cancel [post]
func (h *BomHandler) CancelOutbound(c *fiber.Ctx) error {
	err := h.sessions.Do(GetOperator(c).ID, func(current *bom.OutboundSession) (*bom.OutboundSession, error) {
		if current == nil {
			return nil, errNoSession
		}
		if err := current.Cancel(); err != nil {
			return current, err
		}
		return nil, nil
	})
	if err != nil {
		return respondSessionError(c, err)
	}
	return c.JSON(fiber.Map{"message": "sesión cancelada"})
}

// CommitOutbound godoc
// @Summary      Aplicar el lote de tomas de la sesión activa
// @Description  Una sola transacción: re-verifica stock bajo bloqueo de fila y
// @Description  descuenta todas las tomas o ninguna. Con stock insuficiente la
// @Description  sesión vuelve a picking para corregir.
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CommitOutboundResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/bom/outbound/commit [post]
func (h *BomHandler) CommitOutbound(c *fiber.Ctx) error {
	op := GetOperator(c)
	var processed int
	err := h.sessions.Do(op.ID, func(current *bom.OutboundSession) (*bom.OutboundSession, error) {
		if current == nil {
			return nil, errNoSession
		}
		n, err := h.outboundUC.Commit(c.Context(), op, current)
		if err != nil {
			// Con stock insuficiente la sesión regresó a picking: se conserva
			// para que el operador corrija y reintente.
			return current, err
		}
		processed = n
		return nil, nil
	})
	if err != nil {
		var insufficient *domain.InsufficientStockError
		if errors.As(err, &insufficient) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"code":      "INSUFFICIENT_STOCK",
				"message":   insufficient.Error(),
				"barcode":   insufficient.Barcode,
				"location":  insufficient.LocationCode,
				"available": insufficient.Available,
				"requested": insufficient.Requested,
			})
		}
		return respondSessionError(c, err)
	}
	return c.JSON(dto.CommitOutboundResponse{ProcessedComponents: processed})
}

func sessionDTO(s *bom.OutboundSession) dto.OutboundSessionDTO {
	out := dto.OutboundSessionDTO{
		MainBarcode: s.MainBarcode,
		Sets:        s.Sets,
		State:       string(s.State),
		StagedPicks: len(s.StagedPicks),
	}
	for _, comp := range s.Components {
		out.Components = append(out.Components, dto.ComponentProgressDTO{
			Barcode:       comp.Barcode,
			Name:          comp.Name,
			RequiredQty:   comp.RequiredQty,
			RequiredTotal: comp.RequiredTotal,
			PickedTotal:   comp.PickedTotal,
			OnHand:        comp.OnHand,
			Skipped:       comp.Skipped,
		})
	}
	return out
}
