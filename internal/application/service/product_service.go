package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
)

// ProductService fachada del catálogo de dispositivos.
type ProductService struct {
	gw ports.Gateway
}

func NewProductService(gw ports.Gateway) *ProductService {
	return &ProductService{gw: gw}
}

// Create registra un dispositivo disponible. Devuelve el registro creado con su código de barras.
func (s *ProductService) Create(ctx context.Context, req dto.CreateProductRequest) (*entity.Product, error) {
	req.Status = entity.StatusAvailable
	var env dto.ProductEnvelope
	if err := s.gw.Post(ctx, "/gt/agregarProducto", req, &env); err != nil {
		return nil, err
	}
	if env.Product == nil {
		return nil, &domain.APIError{Msg: MsgProductCreateError, Kind: domain.ErrConflict}
	}
	p := dto.NormalizeProduct(*env.Product)
	return &p, nil
}

// List todos los dispositivos.
func (s *ProductService) List(ctx context.Context) ([]entity.Product, error) {
	var list dto.ProductList
	if err := s.gw.Get(ctx, "/gt/listarProductos", nil, &list); err != nil {
		return nil, err
	}
	return normalizeProducts(list), nil
}

// FindByBarcode detalle completo de un dispositivo.
func (s *ProductService) FindByBarcode(ctx context.Context, code string) (*entity.Product, error) {
	rec, err := findProduct(ctx, s.gw, code)
	if err != nil {
		return nil, err
	}
	p := dto.NormalizeProduct(*rec)
	return &p, nil
}

// Update modifica los campos presentes en req.
func (s *ProductService) Update(ctx context.Context, code string, req dto.UpdateProductRequest) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.NewValidationError("codigo", MsgEmptyCode)
	}
	return s.gw.Put(ctx, "/gt/actualizarProducto/"+url.PathEscape(code), req, nil)
}

func normalizeProducts(list dto.ProductList) []entity.Product {
	out := make([]entity.Product, 0, len(list))
	for _, r := range list {
		out = append(out, dto.NormalizeProduct(r))
	}
	return out
}
