package repository

import "github.com/jhoicas/bodega-app/internal/domain/entity"

// AccessoryRepository define el puerto de persistencia para Accessory (DIP).
type AccessoryRepository interface {
	Create(accessory *entity.Accessory) error
	GetByBarcode(barcode string) (*entity.Accessory, error)
	Update(accessory *entity.Accessory) error
	List(filter ItemFilter) ([]*entity.Accessory, error)
}
