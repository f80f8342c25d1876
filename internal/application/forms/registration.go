package forms

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/application/service"
	"github.com/jhoicas/bodega-app/internal/application/validation"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/catalog"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/pkg/logger"
	"github.com/shopspring/decimal"
)

const (
	MsgInvalidPrice        = "Ingrese un precio válido"
	MsgInvalidCapacity     = "La capacidad no corresponde a la categoría"
	MsgInvalidType         = "Tipo de dispositivo no válido"
	MsgProductRegistered   = "Producto registrado correctamente"
	MsgAccessoryRegistered = "Accesorio registrado correctamente"
)

// ProductForm campos del formulario de dispositivo, tal como los escribe el usuario.
type ProductForm struct {
	ModelCode string `json:"codigoModelo" validate:"required"`
	Serial    string `json:"codigoSerial" validate:"required"`
	Name      string `json:"nombreEquipo" validate:"required"`
	Color     string `json:"color" validate:"required"`
	Category  string `json:"categoriaNombre" validate:"required"`
	Capacity  string `json:"capacidad" validate:"required"`
	Type      string `json:"tipo" validate:"required"`
	Price     string `json:"precio" validate:"required"`
}

// AccessoryForm campos del formulario de accesorio.
type AccessoryForm struct {
	UniqueCode string `json:"codigoUnicoAccs"`
	ModelCode  string `json:"codigoModeloAccs" validate:"required"`
	Name       string `json:"nombreAccs" validate:"required"`
	Price      string `json:"precioAccs" validate:"required"`
}

type ProductCreator interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*entity.Product, error)
}

type AccessoryCreator interface {
	Create(ctx context.Context, req dto.CreateAccessoryRequest) (*entity.Accessory, error)
}

var (
	_ ProductCreator   = (*service.ProductService)(nil)
	_ AccessoryCreator = (*service.AccessoryService)(nil)
)

// Registration alta de dispositivos y accesorios.
type Registration struct {
	products    ProductCreator
	accessories AccessoryCreator
	notify      ports.Notifier
	log         *logger.Logger
	validate    *validation.Validator
}

func NewRegistration(products ProductCreator, accessories AccessoryCreator, notify ports.Notifier, log *logger.Logger) *Registration {
	if log == nil {
		log = logger.Nop()
	}
	if notify == nil {
		notify = ports.NotifierFunc(func(string, string) {})
	}
	return &Registration{
		products:    products,
		accessories: accessories,
		notify:      notify,
		log:         log.Named("forms"),
		validate:    validation.New(),
	}
}

// RegisterProduct valida y registra un dispositivo. Devuelve el código de barras asignado.
func (r *Registration) RegisterProduct(ctx context.Context, f ProductForm) (string, error) {
	f = trimProduct(f)
	req, err := r.productRequest(f)
	if err != nil {
		r.notify.Alert(ports.TitleError, err.Error())
		return "", err
	}
	p, err := r.products.Create(ctx, req)
	if err != nil {
		r.log.Warn().Err(err).Str("model", f.ModelCode).Msg("alta de producto rechazada")
		r.notify.Alert(ports.TitleError, domain.UserMessage(err, service.MsgProductCreateError))
		return "", err
	}
	r.log.Info().Str("barcode", p.Barcode).Msg("producto registrado")
	r.notify.Alert(ports.TitleSuccess, MsgProductRegistered)
	return p.Barcode, nil
}

func (r *Registration) productRequest(f ProductForm) (dto.CreateProductRequest, error) {
	if err := r.required(f); err != nil {
		return dto.CreateProductRequest{}, err
	}
	price, err := parsePrice(f.Price, "precio")
	if err != nil {
		return dto.CreateProductRequest{}, err
	}
	if !catalog.ValidCapacity(f.Category, f.Capacity) {
		return dto.CreateProductRequest{}, domain.NewValidationError("capacidad", MsgInvalidCapacity)
	}
	if !contains(catalog.TypeOptions(), f.Type) {
		return dto.CreateProductRequest{}, domain.NewValidationError("tipo", MsgInvalidType)
	}
	return dto.CreateProductRequest{
		ModelCode:    f.ModelCode,
		Serial:       f.Serial,
		Name:         f.Name,
		Color:        f.Color,
		Capacity:     f.Capacity,
		Price:        dto.PriceFrom(price),
		Type:         f.Type,
		CategoryName: f.Category,
	}, nil
}

// RegisterAccessory valida y registra un accesorio. Devuelve el código de barras asignado.
func (r *Registration) RegisterAccessory(ctx context.Context, f AccessoryForm) (string, error) {
	f.UniqueCode = strings.TrimSpace(f.UniqueCode)
	f.ModelCode = strings.TrimSpace(f.ModelCode)
	f.Name = strings.TrimSpace(f.Name)
	f.Price = strings.TrimSpace(f.Price)
	if err := r.required(f); err != nil {
		r.notify.Alert(ports.TitleError, err.Error())
		return "", err
	}
	price, err := parsePrice(f.Price, "precioAccs")
	if err != nil {
		r.notify.Alert(ports.TitleError, err.Error())
		return "", err
	}
	a, err := r.accessories.Create(ctx, dto.CreateAccessoryRequest{
		UniqueCode: f.UniqueCode,
		ModelCode:  f.ModelCode,
		Name:       f.Name,
		Price:      dto.PriceFrom(price),
	})
	if err != nil {
		r.log.Warn().Err(err).Str("model", f.ModelCode).Msg("alta de accesorio rechazada")
		r.notify.Alert(ports.TitleError, domain.UserMessage(err, service.MsgAccessoryCreateErr))
		return "", err
	}
	r.log.Info().Str("barcode", a.Barcode).Msg("accesorio registrado")
	r.notify.Alert(ports.TitleSuccess, MsgAccessoryRegistered)
	return a.Barcode, nil
}

// required cualquier campo obligatorio vacío produce el mismo mensaje general.
func (r *Registration) required(form any) error {
	err := r.validate.Check(form, nil)
	if err == nil {
		return nil
	}
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return domain.NewValidationError(vErr.Field, domain.MsgRequired)
	}
	return err
}

// parsePrice formato local: punto de miles y coma decimal ($4.500.000 o 1500,50).
func parsePrice(raw, field string) (decimal.Decimal, error) {
	raw = strings.ReplaceAll(strings.TrimPrefix(raw, "$"), ".", "")
	raw = strings.ReplaceAll(raw, ",", ".")
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, domain.NewValidationError(field, MsgInvalidPrice)
	}
	return d, nil
}

func trimProduct(f ProductForm) ProductForm {
	f.ModelCode = strings.TrimSpace(f.ModelCode)
	f.Serial = strings.TrimSpace(f.Serial)
	f.Name = strings.TrimSpace(f.Name)
	f.Color = strings.TrimSpace(f.Color)
	f.Category = strings.TrimSpace(f.Category)
	f.Capacity = strings.TrimSpace(f.Capacity)
	f.Type = strings.TrimSpace(f.Type)
	f.Price = strings.TrimSpace(f.Price)
	return f
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
