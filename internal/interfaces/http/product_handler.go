package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/application/usecase"
	"github.com/jhoicas/bodega-app/internal/domain/repository"
)

// Mensajes de productos.
const (
	MsgProductNotFound    = "Producto no encontrado"
	MsgProductCreateError = "Error al crear el producto"
	MsgProductUpdateError = "Error al actualizar el producto"
	MsgProductsError      = "Error al obtener los productos"
)

// ProductHandler maneja las peticiones HTTP de dispositivos (protegido).
type ProductHandler struct {
	uc    *usecase.ProductUseCase
	users userLookup
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, users userLookup) *ProductHandler {
	return &ProductHandler{uc: uc, users: users}
}

// Create godoc
// @Summary      Agregar dispositivo
// @Description  El código de barras lo asigna el servidor; el dispositivo ingresa a Bodega a cargo del usuario.
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del dispositivo"
// @Success      201   {object}  dto.ProductEnvelope
// @Failure      400   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.MessageResponse
// @Router       /gt/agregarProducto [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return writeError(c, err, MsgProductCreateError)
	}
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return message(c, fiber.StatusBadRequest, MsgInvalidBody)
	}
	out, err := h.uc.Create(user.FullName(), in)
	if err != nil {
		return writeError(c, err, MsgProductCreateError)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductEnvelope{Msg: usecase.MsgProductCreated, Product: out})
}

// GetByBarcode godoc
// @Summary      Buscar dispositivo por código de barras
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        codigo  path  string  true  "Código de barras"
// @Success      200  {object}  dto.ProductEnvelope
// @Failure      404  {object}  dto.MessageResponse
// @Router       /gt/listarProducto/{codigo} [get]
func (h *ProductHandler) GetByBarcode(c *fiber.Ctx) error {
	out, err := h.uc.GetByBarcode(c.Params("codigo"))
	if err != nil {
		return writeError(c, err, MsgProductsError)
	}
	if out == nil {
		return message(c, fiber.StatusNotFound, MsgProductNotFound)
	}
	return c.JSON(dto.ProductEnvelope{Product: out})
}

// List godoc
// @Summary      Listar dispositivos
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string][]dto.ProductRecord
// @Router       /gt/listarProductos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(repository.ItemFilter{})
	if err != nil {
		return writeError(c, err, MsgProductsError)
	}
	return c.JSON(fiber.Map{"productos": list})
}

// Update godoc
// @Summary      Actualizar dispositivo
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        codigo  path  string                     true  "Código de barras"
// @Param        body    body  dto.UpdateProductRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.ProductEnvelope
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /gt/actualizarProducto/{codigo} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return message(c, fiber.StatusBadRequest, MsgInvalidBody)
	}
	out, err := h.uc.Update(c.Params("codigo"), in)
	if err != nil {
		return writeError(c, err, MsgProductUpdateError)
	}
	if out == nil {
		return message(c, fiber.StatusNotFound, MsgProductNotFound)
	}
	return c.JSON(dto.ProductEnvelope{Msg: usecase.MsgUpdated, Product: out})
}

// ListMine godoc
// @Summary      Dispositivos a cargo del usuario
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "yyyy-mm-dd o dd/mm/yyyy"
// @Param        hasta  query  string  false  "yyyy-mm-dd o dd/mm/yyyy"
// @Success      200  {array}   dto.ProductRecord
// @Failure      400  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.MessageResponse
// @Router       /gt/productosBodeguero [get]
func (h *ProductHandler) ListMine(c *fiber.Ctx) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return writeError(c, err, MsgProductsError)
	}
	f, err := rangeFilter(c)
	if err != nil {
		return writeError(c, err, MsgProductsError)
	}
	f.Responsible = user.FullName()
	list, err := h.uc.List(f)
	if err != nil {
		return writeError(c, err, MsgProductsError)
	}
	return c.JSON(list)
}
