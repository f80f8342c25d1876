package repository

import "github.com/jhoicas/bodega-app/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale (DIP).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	List(filter ItemFilter) ([]*entity.Sale, error)
}
