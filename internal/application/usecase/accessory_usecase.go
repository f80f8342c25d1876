package usecase

import (
	"strings"
	"time"

	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/application/validation"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/domain/repository"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccessoryUseCase casos de uso de accesorios.
type AccessoryUseCase struct {
	repo repository.AccessoryRepository
	val  *validation.Validator
}

func NewAccessoryUseCase(repo repository.AccessoryRepository) *AccessoryUseCase {
	return &AccessoryUseCase{repo: repo, val: validation.New()}
}

// Create registra un accesorio. Usa codigoUnicoAccs como código de barras si viene;
// si no, genera uno.
func (uc *AccessoryUseCase) Create(responsible string, in dto.CreateAccessoryRequest) (*dto.AccessoryRecord, error) {
	if err := uc.val.Check(in, validation.Messages{}); err != nil {
		return nil, err
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.NewValidationError("precioAccs", MsgInvalidPrice)
	}
	code := strings.TrimSpace(in.UniqueCode)
	if code == "" {
		var err error
		code, err = uniqueBarcode(func(c string) (bool, error) {
			a, err := uc.repo.GetByBarcode(c)
			return a != nil, err
		})
		if err != nil {
			return nil, err
		}
	}
	availability := in.Availability
	if availability == "" {
		availability = entity.StatusAvailable
	}
	now := time.Now()
	accessory := &entity.Accessory{
		ID:           primitive.NewObjectIDFromTimestamp(now).Hex(),
		Barcode:      code,
		ModelCode:    strings.TrimSpace(in.ModelCode),
		Name:         strings.TrimSpace(in.Name),
		Price:        in.Price.Decimal,
		Availability: availability,
		Responsible:  responsible,
		Location:     DefaultLocation,
		CreatedAt:    now,
	}
	if err := uc.repo.Create(accessory); err != nil {
		return nil, err
	}
	rec := dto.AccessoryRecordFrom(*accessory)
	return &rec, nil
}

// GetByBarcode nil si no existe.
func (uc *AccessoryUseCase) GetByBarcode(code string) (*dto.AccessoryRecord, error) {
	accessory, err := uc.repo.GetByBarcode(strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if accessory == nil {
		return nil, nil
	}
	rec := dto.AccessoryRecordFrom(*accessory)
	return &rec, nil
}

// Update actualiza los campos presentes. nil si el accesorio no existe.
func (uc *AccessoryUseCase) Update(code string, in dto.UpdateAccessoryRequest) (*dto.AccessoryRecord, error) {
	accessory, err := uc.repo.GetByBarcode(strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if accessory == nil {
		return nil, nil
	}
	if in.Name != nil {
		accessory.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		if !in.Price.GreaterThan(decimal.Zero) {
			return nil, domain.NewValidationError("precioAccs", MsgInvalidPrice)
		}
		accessory.Price = in.Price.Decimal
	}
	if in.Availability != nil {
		accessory.Availability = *in.Availability
	}
	if in.Location != nil {
		accessory.Location = strings.TrimSpace(*in.Location)
	}
	if err := uc.repo.Update(accessory); err != nil {
		return nil, err
	}
	rec := dto.AccessoryRecordFrom(*accessory)
	return &rec, nil
}

// List accesorios según el filtro.
func (uc *AccessoryUseCase) List(f repository.ItemFilter) ([]dto.AccessoryRecord, error) {
	list, err := uc.repo.List(f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AccessoryRecord, 0, len(list))
	for _, a := range list {
		items = append(items, dto.AccessoryRecordFrom(*a))
	}
	return items, nil
}
