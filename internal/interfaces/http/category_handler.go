package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-app/internal/application/usecase"
)

const (
	MsgCategoryNotFound = "Categoría no encontrada"
	MsgCategoriesError  = "Error al obtener las categorías"
)

// CategoryHandler consulta de categorías.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categorias
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryRecord
// @Router       /gt/listarCategorias [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List()
	if err != nil {
		return writeError(c, err, MsgCategoriesError)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categorias
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  map[string]dto.CategoryRecord
// @Failure      404  {object}  dto.MessageResponse
// @Router       /gt/listarCategoria/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err, MsgCategoriesError)
	}
	if out == nil {
		return message(c, fiber.StatusNotFound, MsgCategoryNotFound)
	}
	return c.JSON(fiber.Map{"categoria": out})
}
