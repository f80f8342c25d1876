package service

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MovementService fachada de áreas, búsqueda por código y movimientos.
type MovementService struct {
	gw ports.Gateway
}

func NewMovementService(gw ports.Gateway) *MovementService {
	return &MovementService{gw: gw}
}

// ListAreas áreas destino normalizadas a {Label, Value}, sin repetir.
func (s *MovementService) ListAreas(ctx context.Context) ([]entity.Area, error) {
	var list dto.AreaList
	if err := s.gw.Get(ctx, "/gt/areasunicas", nil, &list); err != nil {
		return nil, err
	}
	return dto.NormalizeAreas(list), nil
}

// FindProductByBarcode resuelve un código de barras de dispositivo.
func (s *MovementService) FindProductByBarcode(ctx context.Context, code string) (*entity.ScannedProductLine, error) {
	rec, err := findProduct(ctx, s.gw, code)
	if err != nil {
		return nil, err
	}
	line := dto.NormalizeProductLine(*rec)
	return &line, nil
}

// FindAccessoryByBarcode resuelve un código de barras de accesorio.
func (s *MovementService) FindAccessoryByBarcode(ctx context.Context, code string) (*entity.ScannedAccessoryLine, error) {
	rec, err := findAccessory(ctx, s.gw, code)
	if err != nil {
		return nil, err
	}
	line := dto.NormalizeAccessoryLine(*rec)
	return &line, nil
}

// SubmitMovement registra el borrador enviando solo códigos de barras, área y observación.
// El servidor puede responder solo con {msg}; en ese caso el movimiento devuelto es nil.
func (s *MovementService) SubmitMovement(ctx context.Context, draft entity.MovementDraft) (*entity.Movement, error) {
	var env dto.MovementEnvelope
	if err := s.gw.Post(ctx, "/gt/registrarMovimiento", dto.MovementRequestFrom(draft), &env); err != nil {
		return nil, err
	}
	rec := env.Record()
	if rec == nil {
		return nil, nil
	}
	m := dto.NormalizeMovement(*rec)
	return &m, nil
}

// ListMovements movimientos del bodeguero. desde y hasta se envían tal cual, incluso vacíos.
func (s *MovementService) ListMovements(ctx context.Context, dateFrom, dateTo string) ([]entity.Movement, error) {
	var list dto.MovementList
	params := url.Values{"desde": {dateFrom}, "hasta": {dateTo}}
	if err := s.gw.Get(ctx, "/gt/movimientosBodeguero", params, &list); err != nil {
		return nil, err
	}
	out := make([]entity.Movement, 0, len(list))
	for _, r := range list {
		out = append(out, dto.NormalizeMovement(r))
	}
	return out, nil
}

// GetMovement consulta un movimiento por su id (ObjectID).
func (s *MovementService) GetMovement(ctx context.Context, id string) (*entity.Movement, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("id", MsgEmptyCode)
	}
	if !primitive.IsValidObjectID(id) {
		return nil, &domain.APIError{Status: http.StatusNotFound, Msg: MsgNoResult, Kind: domain.ErrNotFound}
	}
	var env dto.MovementEnvelope
	if err := s.gw.Get(ctx, "/gt/listarMovimiento/"+url.PathEscape(id), nil, &env); err != nil {
		return nil, err
	}
	rec := env.Record()
	if rec == nil {
		return nil, &domain.APIError{Status: http.StatusNotFound, Msg: MsgNoResult, Kind: domain.ErrNotFound}
	}
	m := dto.NormalizeMovement(*rec)
	return &m, nil
}

// UpdateMovementNote reemplaza la observación de un movimiento.
func (s *MovementService) UpdateMovementNote(ctx context.Context, id, note string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.NewValidationError("id", MsgEmptyCode)
	}
	return s.gw.Put(ctx, "/gt/actualizarMovimiento/"+url.PathEscape(id), dto.UpdateNoteRequest{Note: note}, nil)
}

func findProduct(ctx context.Context, gw ports.Gateway, code string) (*dto.ProductRecord, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.NewValidationError("codigo", MsgEmptyCode)
	}
	var env dto.ProductEnvelope
	if err := gw.Get(ctx, "/gt/listarProducto/"+url.PathEscape(code), nil, &env); err != nil {
		return nil, err
	}
	if env.Product == nil || env.Product.Barcode == "" && env.Product.Name == "" {
		return nil, &domain.APIError{Status: http.StatusNotFound, Msg: MsgProductNotFound, Kind: domain.ErrNotFound}
	}
	if env.Product.Barcode == "" {
		env.Product.Barcode = code
	}
	return env.Product, nil
}

func findAccessory(ctx context.Context, gw ports.Gateway, code string) (*dto.AccessoryRecord, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.NewValidationError("codigo", MsgEmptyCode)
	}
	var env dto.AccessoryEnvelope
	if err := gw.Get(ctx, "/gt/listarAccesorio/"+url.PathEscape(code), nil, &env); err != nil {
		return nil, err
	}
	if env.Accessory == nil || env.Accessory.Barcode == "" && env.Accessory.Name == "" {
		return nil, &domain.APIError{Status: http.StatusNotFound, Msg: MsgAccessoryNotFound, Kind: domain.ErrNotFound}
	}
	if env.Accessory.Barcode == "" {
		env.Accessory.Barcode = code
	}
	return env.Accessory, nil
}
