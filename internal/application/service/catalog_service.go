package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
)

// CategoryService fachada de categorías.
type CategoryService struct {
	gw ports.Gateway
}

func NewCategoryService(gw ports.Gateway) *CategoryService {
	return &CategoryService{gw: gw}
}

// List todas las categorías.
func (s *CategoryService) List(ctx context.Context) ([]entity.Category, error) {
	var list dto.CategoryList
	if err := s.gw.Get(ctx, "/gt/listarCategorias", nil, &list); err != nil {
		return nil, err
	}
	out := make([]entity.Category, 0, len(list))
	for _, r := range list {
		out = append(out, dto.NormalizeCategory(r))
	}
	return out, nil
}

// Get una categoría por id.
func (s *CategoryService) Get(ctx context.Context, id string) (*entity.Category, error) {
	var env dto.CategoryEnvelope
	if err := s.gw.Get(ctx, "/gt/listarCategoria/"+url.PathEscape(id), nil, &env); err != nil {
		return nil, err
	}
	rec := env.CategoryRecord
	if env.Category != nil {
		rec = *env.Category
	}
	if rec.ID == "" && rec.Name == "" {
		return nil, &domain.APIError{Status: http.StatusNotFound, Msg: MsgNoResult, Kind: domain.ErrNotFound}
	}
	c := dto.NormalizeCategory(rec)
	return &c, nil
}

// StockService fachada de stock disponible.
type StockService struct {
	gw ports.Gateway
}

func NewStockService(gw ports.Gateway) *StockService {
	return &StockService{gw: gw}
}

// Available stock agrupado; solo se envían los filtros con valor.
func (s *StockService) Available(ctx context.Context, f entity.StockFilter) (*entity.StockSummary, error) {
	params := url.Values{}
	setIf(params, "nombre", f.Name)
	setIf(params, "capacidad", f.Capacity)
	setIf(params, "categoria", f.Category)

	var resp dto.StockResponse
	if err := s.gw.Get(ctx, "/gt/stockDisponible", params, &resp); err != nil {
		return nil, err
	}
	summary := dto.NormalizeStock(resp)
	return &summary, nil
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
