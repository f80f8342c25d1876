// Package sandbox arma el backend de desarrollo sobre el almacén en memoria.
package sandbox

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-app/internal/application/auth"
	"github.com/jhoicas/bodega-app/internal/application/inventory"
	"github.com/jhoicas/bodega-app/internal/application/usecase"
	"github.com/jhoicas/bodega-app/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/bodega-app/internal/interfaces/http"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

// Options opciones del sandbox.
type Options struct {
	Name        string
	JWT         auth.JWTConfig
	SwaggerFile string
}

// New conecta repositorios, casos de uso y rutas sobre store.
func New(store *memory.Store, opts Options, log *logger.Logger) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}
	productRepo := memory.NewProductRepository(store)
	accessoryRepo := memory.NewAccessoryRepository(store)
	categoryRepo := memory.NewCategoryRepository(store)

	deps := apphttp.RouterDeps{
		AuthUC:           auth.NewAuthUseCase(memory.NewUserRepository(store), opts.JWT),
		ProductUC:        usecase.NewProductUseCase(productRepo, categoryRepo),
		AccessoryUC:      usecase.NewAccessoryUseCase(accessoryRepo),
		CategoryUC:       usecase.NewCategoryUseCase(categoryRepo),
		SaleUC:           usecase.NewSaleUseCase(memory.NewSaleRepository(store)),
		RegisterMovement: inventory.NewRegisterMovementUseCase(memory.NewTxRunner(store), log),
		Movements:        inventory.NewMovementUseCase(memory.NewMovementRepository(store)),
		Stock:            inventory.NewStockUseCase(productRepo, accessoryRepo),
		JWTSecret:        opts.JWT.Secret,
	}
	return apphttp.NewApp(apphttp.AppOptions{Name: opts.Name, SwaggerFile: opts.SwaggerFile}, deps, log)
}
