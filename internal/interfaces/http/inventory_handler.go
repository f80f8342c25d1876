package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/application/inventory"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

const (
	MsgAreasError      = "Error al obtener las áreas"
	MsgRegisterError   = "Error al registrar el movimiento"
	MsgMovementError   = "Error al buscar el movimiento"
	MsgUpdateNoteError = "Error al actualizar la observación"
	MsgMovementsError  = "Error al obtener los movimientos"
	MsgStockError      = "Error al obtener el stock"
)

// InventoryHandler maneja áreas, movimientos y stock (protegido).
type InventoryHandler struct {
	register  *inventory.RegisterMovementUseCase
	movements *inventory.MovementUseCase
	stock     *inventory.StockUseCase
	users     userLookup
	log       *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	register *inventory.RegisterMovementUseCase,
	movements *inventory.MovementUseCase,
	stock *inventory.StockUseCase,
	users userLookup,
	log *logger.Logger,
) *InventoryHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &InventoryHandler{register: register, movements: movements, stock: stock, users: users, log: log.Named("http.inventory")}
}

// Areas godoc
// @Summary      Áreas de la bodega
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /gt/areasunicas [get]
func (h *InventoryHandler) Areas(c *fiber.Ctx) error {
	areas, err := h.movements.Areas()
	if err != nil {
		return writeError(c, err, MsgAreasError)
	}
	if areas == nil {
		areas = []string{}
	}
	return c.JSON(areas)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento entre áreas
// @Description  Solo se envían códigos de barras. El área de salida es la ubicación actual de los artículos.
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "productos, accesorios, areaLlegada, observacion"
// @Success      201   {object}  dto.MovementEnvelope
// @Failure      400   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.MessageResponse
// @Router       /gt/registrarMovimiento [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return writeError(c, err, MsgRegisterError)
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return message(c, fiber.StatusBadRequest, MsgInvalidBody)
	}
	mov, err := h.register.RegisterMovementFromRequest(c.UserContext(), user.FullName(), in)
	if err != nil {
		return writeError(c, err, MsgRegisterError)
	}
	return c.Status(fiber.StatusCreated).JSON(movementBody(inventory.MsgRegistered, mov))
}

// GetMovement godoc
// @Summary      Obtener movimiento por ID
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ObjectID del movimiento"
// @Success      200  {object}  dto.MovementEnvelope
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /gt/listarMovimiento/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	mov, err := h.movements.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err, MsgMovementError)
	}
	return c.JSON(movementBody("", mov))
}

// UpdateMovement godoc
// @Summary      Actualizar la observación de un movimiento
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ObjectID del movimiento"
// @Param        body  body  dto.UpdateNoteRequest  true  "observacion"
// @Success      200  {object}  dto.MovementEnvelope
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /gt/actualizarMovimiento/{id} [put]
func (h *InventoryHandler) UpdateMovement(c *fiber.Ctx) error {
	var in dto.UpdateNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return message(c, fiber.StatusBadRequest, MsgInvalidBody)
	}
	mov, err := h.movements.UpdateNote(c.Params("id"), in.Note)
	if err != nil {
		return writeError(c, err, MsgUpdateNoteError)
	}
	h.log.Info().Str("movement_id", mov.ID).Str("user_id", GetUserID(c)).Msg("observación actualizada")
	return c.JSON(movementBody(inventory.MsgNoteUpdated, mov))
}

// ListMine godoc
// @Summary      Movimientos del usuario
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "yyyy-mm-dd o dd/mm/yyyy"
// @Param        hasta  query  string  false  "yyyy-mm-dd o dd/mm/yyyy"
// @Success      200  {array}   dto.MovementRecord
// @Failure      400  {object}  dto.MessageResponse
// @Router       /gt/movimientosBodeguero [get]
func (h *InventoryHandler) ListMine(c *fiber.Ctx) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return writeError(c, err, MsgMovementsError)
	}
	f, err := rangeFilter(c)
	if err != nil {
		return writeError(c, err, MsgMovementsError)
	}
	list, err := h.movements.ListByResponsible(user.FullName(), f)
	if err != nil {
		return writeError(c, err, MsgMovementsError)
	}
	out := make([]dto.MovementRecord, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementRecordFrom(*m))
	}
	return c.JSON(out)
}

// Stock godoc
// @Summary      Stock disponible agrupado
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        nombre     query  string  false  "Contiene, sin distinguir mayúsculas"
// @Param        capacidad  query  string  false  "Capacidad exacta"
// @Param        categoria  query  string  false  "Categoría exacta"
// @Success      200  {object}  dto.StockResponse
// @Router       /gt/stockDisponible [get]
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	summary, err := h.stock.Available(entity.StockFilter{
		Name:     c.Query("nombre"),
		Capacity: c.Query("capacidad"),
		Category: c.Query("categoria"),
	})
	if err != nil {
		return writeError(c, err, MsgStockError)
	}
	return c.JSON(dto.StockResponseFrom(*summary))
}

func movementBody(msg string, m *entity.Movement) fiber.Map {
	body := fiber.Map{"movimiento": dto.MovementRecordFrom(*m)}
	if msg != "" {
		body["msg"] = msg
	}
	return body
}
