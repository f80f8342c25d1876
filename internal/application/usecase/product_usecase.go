package usecase

import (
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/application/validation"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/catalog"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/domain/repository"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mensajes devueltos en {msg}.
const (
	MsgCategoryNotFound = "Categoría no encontrada"
	MsgInvalidPrice     = "El precio debe ser mayor que cero"
	MsgInvalidCapacity  = "Capacidad no válida para la categoría"
	MsgInvalidType      = "Tipo de dispositivo no válido"
	MsgProductCreated   = "Producto agregado correctamente"
	MsgAccessoryCreated = "Accesorio agregado correctamente"
	MsgUpdated          = "Actualizado correctamente"
)

// DefaultLocation área en la que ingresa todo artículo nuevo.
const DefaultLocation = "Bodega"

// ProductUseCase casos de uso de dispositivos. El código de barras lo asigna el servidor.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	val          *validation.Validator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, val: validation.New()}
}

// Create registra un dispositivo a cargo de responsible, en la bodega.
func (uc *ProductUseCase) Create(responsible string, in dto.CreateProductRequest) (*dto.ProductRecord, error) {
	if err := uc.val.Check(in, validation.Messages{}); err != nil {
		return nil, err
	}
	category, err := uc.categoryRepo.GetByName(in.CategoryName)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, &domain.ValidationError{Field: "categoriaNombre", Msg: MsgCategoryNotFound, Kind: domain.ErrNotFound}
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.NewValidationError("precio", MsgInvalidPrice)
	}
	if !catalog.ValidCapacity(category.Name, in.Capacity) {
		return nil, domain.NewValidationError("capacidad", MsgInvalidCapacity)
	}
	if !slices.Contains(catalog.TypeOptions(), in.Type) {
		return nil, domain.NewValidationError("tipo", MsgInvalidType)
	}
	code, err := uniqueBarcode(func(c string) (bool, error) {
		p, err := uc.repo.GetByBarcode(c)
		return p != nil, err
	})
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = entity.StatusAvailable
	}
	now := time.Now()
	product := &entity.Product{
		ID:          primitive.NewObjectIDFromTimestamp(now).Hex(),
		Barcode:     code,
		ModelCode:   strings.TrimSpace(in.ModelCode),
		Serial:      strings.TrimSpace(in.Serial),
		Name:        strings.TrimSpace(in.Name),
		Color:       strings.TrimSpace(in.Color),
		Capacity:    in.Capacity,
		Price:       in.Price.Decimal,
		Type:        in.Type,
		Category:    category.Name,
		Status:      status,
		Responsible: responsible,
		Location:    DefaultLocation,
		CreatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	rec := dto.ProductRecordFrom(*product)
	return &rec, nil
}

// GetByBarcode obtiene un dispositivo por código de barras. nil si no existe.
func (uc *ProductUseCase) GetByBarcode(code string) (*dto.ProductRecord, error) {
	product, err := uc.repo.GetByBarcode(strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	rec := dto.ProductRecordFrom(*product)
	return &rec, nil
}

// Update actualiza los campos presentes. nil si el dispositivo no existe.
func (uc *ProductUseCase) Update(code string, in dto.UpdateProductRequest) (*dto.ProductRecord, error) {
	product, err := uc.repo.GetByBarcode(strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Color != nil {
		product.Color = strings.TrimSpace(*in.Color)
	}
	if in.Capacity != nil {
		if !catalog.ValidCapacity(product.Category, *in.Capacity) {
			return nil, domain.NewValidationError("capacidad", MsgInvalidCapacity)
		}
		product.Capacity = *in.Capacity
	}
	if in.Price != nil {
		if !in.Price.GreaterThan(decimal.Zero) {
			return nil, domain.NewValidationError("precio", MsgInvalidPrice)
		}
		product.Price = in.Price.Decimal
	}
	if in.Type != nil {
		if !slices.Contains(catalog.TypeOptions(), *in.Type) {
			return nil, domain.NewValidationError("tipo", MsgInvalidType)
		}
		product.Type = *in.Type
	}
	if in.Status != nil {
		product.Status = *in.Status
	}
	if in.Location != nil {
		product.Location = strings.TrimSpace(*in.Location)
	}
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	rec := dto.ProductRecordFrom(*product)
	return &rec, nil
}

// List dispositivos según el filtro, más recientes primero.
func (uc *ProductUseCase) List(f repository.ItemFilter) ([]dto.ProductRecord, error) {
	list, err := uc.repo.List(f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductRecord, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductRecordFrom(*p))
	}
	return items, nil
}
