package inventory

import (
	"strings"

	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/domain/filter"
	"github.com/jhoicas/bodega-app/internal/domain/inventory"
	"github.com/jhoicas/bodega-app/internal/domain/repository"
)

// StockUseCase stock disponible agrupado por modelo.
// Solo cuentan los artículos en estado Disponible.
type StockUseCase struct {
	productRepo   repository.ProductRepository
	accessoryRepo repository.AccessoryRepository
}

// NewStockUseCase construye el caso de uso de stock.
func NewStockUseCase(productRepo repository.ProductRepository, accessoryRepo repository.AccessoryRepository) *StockUseCase {
	return &StockUseCase{productRepo: productRepo, accessoryRepo: accessoryRepo}
}

// Available agrupa el stock disponible. Nombre filtra por contenido sin distinguir
// mayúsculas; capacidad y categoría por igualdad. Con filtro de capacidad o categoría
// no se listan accesorios, que no tienen esos atributos.
func (uc *StockUseCase) Available(f entity.StockFilter) (*entity.StockSummary, error) {
	products, err := uc.productRepo.List(repository.ItemFilter{Status: entity.StatusAvailable})
	if err != nil {
		return nil, err
	}
	kept := products[:0]
	for _, p := range products {
		if !filter.MatchName(p.Name, f.Name) {
			continue
		}
		if f.Capacity != "" && !strings.EqualFold(p.Capacity, f.Capacity) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		kept = append(kept, p)
	}
	summary := &entity.StockSummary{Products: inventory.GroupProducts(kept)}

	if f.Capacity != "" || f.Category != "" {
		return summary, nil
	}
	accessories, err := uc.accessoryRepo.List(repository.ItemFilter{Status: entity.StatusAvailable})
	if err != nil {
		return nil, err
	}
	keptAcc := accessories[:0]
	for _, a := range accessories {
		if filter.MatchName(a.Name, f.Name) {
			keptAcc = append(keptAcc, a)
		}
	}
	summary.Accessories = inventory.GroupAccessories(keptAcc)
	return summary, nil
}
