package inventory

import (
	"context"

	"github.com/jhoicas/bodega-app/internal/domain/repository"
)

// TxRunner ejecuta una función de forma atómica, pasando repositorios atados a esa transacción.
// Si la función falla no queda ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		accessoryRepo repository.AccessoryRepository,
	) error) error
}
