package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/auth"
	"github.com/jhoicas/Bodega-api/internal/application/catalog"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/ledger"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// CatalogHandler maneja artículos, ubicaciones, reportes y las importaciones
// masivas, incluido el conteo físico completo.
type CatalogHandler struct {
	catalogUC   *catalog.UseCase
	importUC    *catalog.ImportUseCase
	stocktakeUC *ledger.StocktakeUseCase
	authUC      *auth.UseCase
}

// NewCatalogHandler construye el handler de catálogo.
func NewCatalogHandler(catalogUC *catalog.UseCase, importUC *catalog.ImportUseCase, stocktakeUC *ledger.StocktakeUseCase, authUC *auth.UseCase) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC, importUC: importUC, stocktakeUC: stocktakeUC, authUC: authUC}
}

// SearchItems godoc
// @Summary      Buscar artículos con stock total
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "subcadena en barcode, nombre o descripción; vacío lista todo"
// @Param        limit   query  int     false  "máximo de filas (default 500)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.ItemSummaryDTO
// @Router       /api/items [get]
func (h *CatalogHandler) SearchItems(c *fiber.Ctx) error {
	list, err := h.catalogUC.SearchItems(c.Query("q"), c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.ItemSummaryDTO, 0, len(list))
	for _, s := range list {
		out = append(out, itemSummaryDTO(s))
	}
	return c.JSON(out)
}

// UpsertItem godoc
// @Summary      Crear o sobreescribir un artículo por código de barras
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRequest  true  "barcode, name, description, unit, category, safe_stock"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *CatalogHandler) UpsertItem(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.catalogUC.UpsertItem(catalog.ItemInput{
		Barcode:     in.Barcode,
		Name:        in.Name,
		Description: in.Description,
		Unit:        in.Unit,
		Category:    in.Category,
		SafeStock:   in.SafeStock,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "artículo registrado"})
}

// ItemDetail godoc
// @Summary      Detalle de un artículo con inventario por ubicación
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        barcode  path  string  true  "código de barras"
// @Success      200  {object}  dto.ItemSummaryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{barcode} [get]
func (h *CatalogHandler) ItemDetail(c *fiber.Ctx) error {
	item, breakdown, err := h.catalogUC.ItemDetail(c.Params("barcode"))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := dto.ItemSummaryDTO{
		Barcode:     item.Barcode,
		Name:        item.Name,
		Description: item.Description,
		Unit:        item.Unit,
		Category:    item.Category,
		SafeStock:   item.SafeStock,
	}
	for _, lq := range breakdown {
		out.TotalQuantity = out.TotalQuantity.Add(lq.Quantity)
		out.Locations = append(out.Locations, locationQuantityDTO(lq))
	}
	return c.JSON(out)
}

// SetSafeStock godoc
// @Summary      Fijar el umbral de alerta de un artículo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        barcode  path  string                true  "código de barras"
// @Param        body     body  dto.SafeStockRequest  true  "safe_stock"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{barcode}/safe-stock [put]
func (h *CatalogHandler) SetSafeStock(c *fiber.Ctx) error {
	var in dto.SafeStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.catalogUC.SetSafeStock(c.Params("barcode"), in.SafeStock); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "umbral actualizado"})
}

// DeleteItem godoc
// @Summary      Eliminar un artículo (solo administrador, pide contraseña)
// @Description  Rechazado mientras el artículo tenga inventario positivo. Borra
// @Description  en cascada historial, filas de inventario a cero y líneas BOM.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        barcode  path  string                 true  "código de barras"
// @Param        body     body  dto.DeleteItemRequest  true  "password del administrador"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{barcode} [delete]
func (h *CatalogHandler) DeleteItem(c *fiber.Ctx) error {
	var in dto.DeleteItemRequest
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
	if err := h.importUC.DeleteItem(c.Context(), c.Params("barcode")); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "artículo eliminado"})
}

// LowStockReport godoc
// @Summary      Artículos con stock total bajo su umbral de seguridad
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemSummaryDTO
// @Router       /api/items/low-stock [get]
func (h *CatalogHandler) LowStockReport(c *fiber.Ctx) error {
	list, err := h.catalogUC.LowStockReport()
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.ItemSummaryDTO, 0, len(list))
	for _, s := range list {
		out = append(out, itemSummaryDTO(s))
	}
	return c.JSON(out)
}

// ImportItems godoc
// @Summary      Sobreescribir el catálogo completo de artículos
// @Description  Upsert de cada fila y eliminación de los ausentes, en una sola
// @Description  transacción. Un obsoleto con stock positivo se conserva.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportItemsRequest  true  "items"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items/import [post]
func (h *CatalogHandler) ImportItems(c *fiber.Ctx) error {
	var in dto.ImportItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rows := make([]catalog.ItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		rows = append(rows, catalog.ItemInput{
			Barcode:     item.Barcode,
			Name:        item.Name,
			Description: item.Description,
			Unit:        item.Unit,
			Category:    item.Category,
			SafeStock:   item.SafeStock,
		})
	}
	result, err := h.importUC.ImportItems(c.Context(), rows)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"upserted": result.Upserted,
		"deleted":  result.Deleted,
		"kept":     result.Kept,
	})
}

// ListLocations godoc
// @Summary      Listar todas las ubicaciones (incluye marcadores visuales)
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LocationDTO
// @Router       /api/locations [get]
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	list, err := h.catalogUC.ListLocations()
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.LocationDTO, 0, len(list))
	for _, l := range list {
		out = append(out, locationDTO(l))
	}
	return c.JSON(out)
}

// ImportLocations godoc
// @Summary      Reemplazar el mapa de un piso
// @Description  Inserta o reposiciona las celdas entrantes y elimina las
// @Description  ausentes, salvo las que conservan inventario.
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportLocationsRequest  true  "floor, locations"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/locations/import [post]
func (h *CatalogHandler) ImportLocations(c *fiber.Ctx) error {
	var in dto.ImportLocationsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rows := make([]catalog.LocationInput, 0, len(in.Locations))
	for _, cell := range in.Locations {
		rows = append(rows, catalog.LocationInput{Code: cell.Code, X: cell.X, Y: cell.Y})
	}
	result, err := h.importUC.ImportLocations(c.Context(), in.Floor, rows)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"inserted": result.Inserted,
		"updated":  result.Updated,
		"deleted":  result.Deleted,
		"kept":     result.Kept,
	})
}

// RenameFloor godoc
// @Summary      Renombrar un piso completo (solo administrador)
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RenameFloorRequest  true  "old_name, new_name"
// @Success      200   {object}  map[string]int64
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations/rename-floor [post]
func (h *CatalogHandler) RenameFloor(c *fiber.Ctx) error {
	var in dto.RenameFloorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	count, err := h.importUC.RenameFloor(c.Context(), in.OldName, in.NewName)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"renamed": count})
}

// ImportInventory godoc
// @Summary      Sobreescribir el ledger con un conteo físico completo
// @Description  Cada par contado se ajusta con el delta frente a lo vigente y
// @Description  queda como IN/OUT con referencia STOCKTAKE en el historial;
// @Description  los pares con stock no contados se llevan a cero. Una sola
// @Description  transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportInventoryRequest  true  "inventory"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/import [post]
func (h *CatalogHandler) ImportInventory(c *fiber.Ctx) error {
	var in dto.ImportInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rows := make([]ledger.StocktakeRow, 0, len(in.Inventory))
	for _, row := range in.Inventory {
		rows = append(rows, ledger.StocktakeRow{
			Barcode:      row.Barcode,
			ItemName:     row.ItemName,
			LocationCode: row.LocationCode,
			Quantity:     row.Quantity,
		})
	}
	result, err := h.stocktakeUC.ImportInventory(c.Context(), GetOperator(c), rows)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"applied":   result.Applied,
		"unchanged": result.Unchanged,
		"zeroed":    result.Zeroed,
		"skipped":   result.Skipped,
	})
}

// InventoryReport godoc
// @Summary      Volcado completo de inventario para la página de reportes
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  repository.InventoryReportRow
// @Router       /api/reports/inventory [get]
func (h *CatalogHandler) InventoryReport(c *fiber.Ctx) error {
	report, err := h.catalogUC.InventoryReport()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(report)
}

func itemSummaryDTO(s *repository.ItemStockSummary) dto.ItemSummaryDTO {
	out := dto.ItemSummaryDTO{
		Barcode:       s.Item.Barcode,
		Name:          s.Item.Name,
		Description:   s.Item.Description,
		Unit:          s.Item.Unit,
		Category:      s.Item.Category,
		SafeStock:     s.Item.SafeStock,
		TotalQuantity: s.TotalQuantity,
	}
	for _, lq := range s.Locations {
		out.Locations = append(out.Locations, locationQuantityDTO(lq))
	}
	return out
}

func locationQuantityDTO(lq repository.LocationQuantity) dto.LocationQuantityDTO {
	return dto.LocationQuantityDTO{
		LocationCode: lq.LocationCode,
		Floor:        lq.Floor,
		Quantity:     lq.Quantity,
	}
}

func locationDTO(l *entity.Location) dto.LocationDTO {
	return dto.LocationDTO{
		Code:     l.Code,
		Floor:    l.Floor,
		Kind:     l.Kind,
		Label:    l.Label,
		X:        l.X,
		Y:        l.Y,
		SpanX:    l.SpanX,
		SpanY:    l.SpanY,
		Capacity: l.Capacity,
	}
}
