package usecase

import (
	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/domain/repository"
)

// CategoryUseCase consulta de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso con el puerto de persistencia.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// GetByID obtiene una categoría por ID. nil si no existe.
func (uc *CategoryUseCase) GetByID(id string) (*dto.CategoryRecord, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	rec := toCategoryRecord(category)
	return &rec, nil
}

// List todas las categorías ordenadas por nombre.
func (uc *CategoryUseCase) List() ([]dto.CategoryRecord, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryRecord, 0, len(list))
	for _, c := range list {
		items = append(items, toCategoryRecord(c))
	}
	return items, nil
}

func toCategoryRecord(c *entity.Category) dto.CategoryRecord {
	return dto.CategoryRecord{ID: c.ID, Name: c.Name, Description: c.Description}
}
