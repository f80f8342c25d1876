package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-app/internal/application/auth"
	"github.com/jhoicas/bodega-app/internal/application/inventory"
	"github.com/jhoicas/bodega-app/internal/application/usecase"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	AccessoryUC      *usecase.AccessoryUseCase
	CategoryUC       *usecase.CategoryUseCase
	SaleUC           *usecase.SaleUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Movements        *inventory.MovementUseCase
	Stock            *inventory.StockUseCase
	JWTSecret        string
	Log              *logger.Logger
}

// Router registra las rutas bajo /gt.
func Router(app *fiber.App, deps RouterDeps) {
	gt := app.Group("/gt")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	gt.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token). El middleware va por ruta para
	// que una ruta inexistente responda 404 y no 401.
	authMW := AuthMiddleware(deps.JWTSecret)
	warehouse := RequireRole(entity.RoleBodeguero, entity.RoleAdmin)

	gt.Get("/perfil", authMW, authHandler.Profile)

	productHandler := NewProductHandler(deps.ProductUC, deps.AuthUC)
	gt.Get("/listarProductos", authMW, productHandler.List)
	gt.Get("/listarProducto/:codigo", authMW, productHandler.GetByBarcode)
	gt.Post("/agregarProducto", authMW, warehouse, productHandler.Create)
	gt.Put("/actualizarProducto/:codigo", authMW, warehouse, productHandler.Update)
	gt.Get("/productosBodeguero", authMW, warehouse, productHandler.ListMine)

	accessoryHandler := NewAccessoryHandler(deps.AccessoryUC, deps.AuthUC)
	gt.Get("/listarAccesorios", authMW, accessoryHandler.List)
	gt.Get("/listarAccesorio/:codigo", authMW, accessoryHandler.GetByBarcode)
	gt.Post("/agregarAccesorio", authMW, warehouse, accessoryHandler.Create)
	gt.Put("/actualizarAccesorio/:codigo", authMW, warehouse, accessoryHandler.Update)
	gt.Get("/accesoriosBodeguero", authMW, warehouse, accessoryHandler.ListMine)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	gt.Get("/listarCategorias", authMW, categoryHandler.List)
	gt.Get("/listarCategoria/:id", authMW, categoryHandler.GetByID)

	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Movements, deps.Stock, deps.AuthUC, deps.Log)
	gt.Get("/areasunicas", authMW, inventoryHandler.Areas)
	gt.Get("/stockDisponible", authMW, inventoryHandler.Stock)
	gt.Get("/listarMovimiento/:id", authMW, inventoryHandler.GetMovement)
	gt.Post("/registrarMovimiento", authMW, warehouse, inventoryHandler.RegisterMovement)
	gt.Put("/actualizarMovimiento/:id", authMW, warehouse, inventoryHandler.UpdateMovement)
	gt.Get("/movimientosBodeguero", authMW, warehouse, inventoryHandler.ListMine)

	saleHandler := NewSaleHandler(deps.SaleUC, deps.AuthUC)
	gt.Get("/ventas", authMW, RequireRole(entity.RoleAdmin, entity.RoleVendedor), saleHandler.List)
}
