package repository

import (
	"time"

	"github.com/jhoicas/bodega-app/internal/domain/entity"
)

// ItemFilter filtro común de listados de productos y accesorios.
// Campos vacíos o nil no filtran.
type ItemFilter struct {
	Responsible string
	Location    string
	Status      string
	From        *time.Time
	To          *time.Time
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByBarcode(barcode string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(filter ItemFilter) ([]*entity.Product, error)
}
