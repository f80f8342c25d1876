package service

import (
	"context"
	"net/url"

	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
)

// ReportService listados del bodeguero por rango de fechas.
type ReportService struct {
	gw ports.Gateway
}

func NewReportService(gw ports.Gateway) *ReportService {
	return &ReportService{gw: gw}
}

// ProductsByDate dispositivos a cargo del bodeguero. Las fechas viajan tal cual.
func (s *ReportService) ProductsByDate(ctx context.Context, dateFrom, dateTo string) ([]entity.Product, error) {
	var list dto.ProductList
	if err := s.gw.Get(ctx, "/gt/productosBodeguero", rangeParams(dateFrom, dateTo), &list); err != nil {
		return nil, err
	}
	return normalizeProducts(list), nil
}

// AccessoriesByDate accesorios a cargo del bodeguero.
func (s *ReportService) AccessoriesByDate(ctx context.Context, dateFrom, dateTo string) ([]entity.Accessory, error) {
	var list dto.AccessoryList
	if err := s.gw.Get(ctx, "/gt/accesoriosBodeguero", rangeParams(dateFrom, dateTo), &list); err != nil {
		return nil, err
	}
	return normalizeAccessories(list), nil
}

// SaleService ventas por fechas.
type SaleService struct {
	gw ports.Gateway
}

func NewSaleService(gw ports.Gateway) *SaleService {
	return &SaleService{gw: gw}
}

// ListByDates ventas; desde y hasta solo se envían si tienen valor.
func (s *SaleService) ListByDates(ctx context.Context, dateFrom, dateTo string) ([]entity.Sale, error) {
	params := url.Values{}
	setIf(params, "desde", dateFrom)
	setIf(params, "hasta", dateTo)

	var list dto.SaleList
	if err := s.gw.Get(ctx, "/gt/ventas", params, &list); err != nil {
		return nil, err
	}
	out := make([]entity.Sale, 0, len(list))
	for _, r := range list {
		out = append(out, dto.NormalizeSale(r))
	}
	return out, nil
}

func rangeParams(dateFrom, dateTo string) url.Values {
	return url.Values{"desde": {dateFrom}, "hasta": {dateTo}}
}
