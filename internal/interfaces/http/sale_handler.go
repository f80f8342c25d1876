package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-app/internal/application/usecase"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
)

const MsgSalesError = "Error al obtener las ventas"

// SaleHandler ventas por fechas.
type SaleHandler struct {
	uc    *usecase.SaleUseCase
	users userLookup
}

func NewSaleHandler(uc *usecase.SaleUseCase, users userLookup) *SaleHandler {
	return &SaleHandler{uc: uc, users: users}
}

// List godoc
// @Summary      Ventas por rango de fechas
// @Description  Un vendedor solo ve sus ventas; admin ve todas.
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "yyyy-mm-dd o dd/mm/yyyy"
// @Param        hasta  query  string  false  "yyyy-mm-dd o dd/mm/yyyy"
// @Success      200  {array}   dto.SaleRecord
// @Failure      403  {object}  dto.MessageResponse
// @Router       /gt/ventas [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	f, err := rangeFilter(c)
	if err != nil {
		return writeError(c, err, MsgSalesError)
	}
	if GetRole(c) == entity.RoleVendedor {
		user, err := currentUser(c, h.users)
		if err != nil {
			return writeError(c, err, MsgSalesError)
		}
		f.Responsible = user.FullName()
	}
	list, err := h.uc.List(f)
	if err != nil {
		return writeError(c, err, MsgSalesError)
	}
	return c.JSON(list)
}
