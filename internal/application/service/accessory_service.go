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

// AccessoryService fachada del catálogo de accesorios.
type AccessoryService struct {
	gw ports.Gateway
}

func NewAccessoryService(gw ports.Gateway) *AccessoryService {
	return &AccessoryService{gw: gw}
}

// Create registra un accesorio disponible.
func (s *AccessoryService) Create(ctx context.Context, req dto.CreateAccessoryRequest) (*entity.Accessory, error) {
	req.Availability = entity.StatusAvailable
	var env dto.AccessoryEnvelope
	if err := s.gw.Post(ctx, "/gt/agregarAccesorio", req, &env); err != nil {
		return nil, err
	}
	if env.Accessory == nil {
		return nil, &domain.APIError{Msg: MsgAccessoryCreateErr, Kind: domain.ErrConflict}
	}
	a := dto.NormalizeAccessory(*env.Accessory)
	return &a, nil
}

// List todos los accesorios.
func (s *AccessoryService) List(ctx context.Context) ([]entity.Accessory, error) {
	var list dto.AccessoryList
	if err := s.gw.Get(ctx, "/gt/listarAccesorios", nil, &list); err != nil {
		return nil, err
	}
	return normalizeAccessories(list), nil
}

// FindByBarcode detalle completo de un accesorio.
func (s *AccessoryService) FindByBarcode(ctx context.Context, code string) (*entity.Accessory, error) {
	rec, err := findAccessory(ctx, s.gw, code)
	if err != nil {
		return nil, err
	}
	a := dto.NormalizeAccessory(*rec)
	return &a, nil
}

// Update modifica los campos presentes en req.
func (s *AccessoryService) Update(ctx context.Context, code string, req dto.UpdateAccessoryRequest) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.NewValidationError("codigo", MsgEmptyCode)
	}
	return s.gw.Put(ctx, "/gt/actualizarAccesorio/"+url.PathEscape(code), req, nil)
}

func normalizeAccessories(list dto.AccessoryList) []entity.Accessory {
	out := make([]entity.Accessory, 0, len(list))
	for _, r := range list {
		out = append(out, dto.NormalizeAccessory(r))
	}
	return out
}
