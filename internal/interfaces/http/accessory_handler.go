package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/application/usecase"
	"github.com/jhoicas/bodega-app/internal/domain/repository"
)

const (
	MsgAccessoryNotFound    = "Accesorio no encontrado"
	MsgAccessoryCreateError = "Error al crear el accesorio"
	MsgAccessoryUpdateError = "Error al actualizar el accesorio"
	MsgAccessoriesError     = "Error al obtener los accesorios"
)

// AccessoryHandler maneja las peticiones HTTP de accesorios (protegido).
type AccessoryHandler struct {
	uc    *usecase.AccessoryUseCase
	users userLookup
}

func NewAccessoryHandler(uc *usecase.AccessoryUseCase, users userLookup) *AccessoryHandler {
	return &AccessoryHandler{uc: uc, users: users}
}

// Create godoc
// @Summary      Agregar accesorio
// @Tags         accesorios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccessoryRequest  true  "Datos del accesorio"
// @Success      201   {object}  dto.AccessoryEnvelope
// @Failure      400   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.MessageResponse
// @Router       /gt/agregarAccesorio [post]
func (h *AccessoryHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return writeError(c, err, MsgAccessoryCreateError)
	}
	var in dto.CreateAccessoryRequest
	if err := c.BodyParser(&in); err != nil {
		return message(c, fiber.StatusBadRequest, MsgInvalidBody)
	}
	out, err := h.uc.Create(user.FullName(), in)
	if err != nil {
		return writeError(c, err, MsgAccessoryCreateError)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AccessoryEnvelope{Msg: usecase.MsgAccessoryCreated, Accessory: out})
}

// GetByBarcode godoc
// @Summary      Buscar accesorio por código de barras
// @Tags         accesorios
// @Security     Bearer
// @Produce      json
// @Param        codigo  path  string  true  "Código de barras"
// @Success      200  {object}  dto.AccessoryEnvelope
// @Failure      404  {object}  dto.MessageResponse
// @Router       /gt/listarAccesorio/{codigo} [get]
func (h *AccessoryHandler) GetByBarcode(c *fiber.Ctx) error {
	out, err := h.uc.GetByBarcode(c.Params("codigo"))
	if err != nil {
		return writeError(c, err, MsgAccessoriesError)
	}
	if out == nil {
		return message(c, fiber.StatusNotFound, MsgAccessoryNotFound)
	}
	return c.JSON(dto.AccessoryEnvelope{Accessory: out})
}

// List godoc
// @Summary      Listar accesorios
// @Tags         accesorios
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AccessoryRecord
// @Router       /gt/listarAccesorios [get]
func (h *AccessoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(repository.ItemFilter{})
	if err != nil {
		return writeError(c, err, MsgAccessoriesError)
	}
	return c.JSON(list)
}

// Update godoc
// @Summary      Actualizar accesorio
// @Tags         accesorios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        codigo  path  string                       true  "Código de barras"
// @Param        body    body  dto.UpdateAccessoryRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.AccessoryEnvelope
// @Failure      404  {object}  dto.MessageResponse
// @Router       /gt/actualizarAccesorio/{codigo} [put]
func (h *AccessoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAccessoryRequest
	if err := c.BodyParser(&in); err != nil {
		return message(c, fiber.StatusBadRequest, MsgInvalidBody)
	}
	out, err := h.uc.Update(c.Params("codigo"), in)
	if err != nil {
		return writeError(c, err, MsgAccessoryUpdateError)
	}
	if out == nil {
		return message(c, fiber.StatusNotFound, MsgAccessoryNotFound)
	}
	return c.JSON(dto.AccessoryEnvelope{Msg: usecase.MsgUpdated, Accessory: out})
}

// ListMine godoc
// @Summary      Accesorios a cargo del usuario
// @Tags         accesorios
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "yyyy-mm-dd o dd/mm/yyyy"
// @Param        hasta  query  string  false  "yyyy-mm-dd o dd/mm/yyyy"
// @Success      200  {array}  dto.AccessoryRecord
// @Router       /gt/accesoriosBodeguero [get]
func (h *AccessoryHandler) ListMine(c *fiber.Ctx) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return writeError(c, err, MsgAccessoriesError)
	}
	f, err := rangeFilter(c)
	if err != nil {
		return writeError(c, err, MsgAccessoriesError)
	}
	f.Responsible = user.FullName()
	list, err := h.uc.List(f)
	if err != nil {
		return writeError(c, err, MsgAccessoriesError)
	}
	return c.JSON(list)
}
