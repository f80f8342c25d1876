package usecase

import (
	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/domain/repository"
)

// SaleUseCase consulta de ventas por rango de fechas.
type SaleUseCase struct {
	repo repository.SaleRepository
}

func NewSaleUseCase(repo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{repo: repo}
}

// List ventas del filtro, más recientes primero. Un vendedor solo ve las suyas
// (el handler fija Responsible).
func (uc *SaleUseCase) List(f repository.ItemFilter) ([]dto.SaleRecord, error) {
	list, err := uc.repo.List(f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleRecord, 0, len(list))
	for _, s := range list {
		items = append(items, dto.SaleRecordFrom(*s))
	}
	return items, nil
}
