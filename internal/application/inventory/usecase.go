package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/bodega-app/internal/application/validation"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/domain/repository"
	"github.com/jhoicas/bodega-app/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mensajes devueltos en {msg}.
const (
	MsgAreaRequired      = "El área de llegada es obligatoria"
	MsgNoteRequired      = "La observación es obligatoria"
	MsgLinesRequired     = "Debe incluir al menos un producto o accesorio"
	MsgMovementNotFound  = "Movimiento no encontrado"
	MsgInvalidMovementID = "ID de movimiento inválido"
	MsgRegistered        = "Movimiento registrado correctamente"
	MsgNoteUpdated       = "Observación actualizada correctamente"
)

// RegisterMovementUseCase registra movimientos entre áreas de forma transaccional:
// todos los códigos se validan antes de cambiar el área de cualquier artículo.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	val      *validation.Validator
	log      *logger.Logger
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, log *logger.Logger) *RegisterMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		val:      validation.New(),
		log:      log.Named("inventory"),
		now:      time.Now,
	}
}

// MovementInput entrada para registrar un movimiento. Responsible es el nombre completo
// del usuario autenticado.
type MovementInput struct {
	Responsible     string   `json:"responsable" validate:"required"`
	Products        []string `json:"productos"`
	Accessories     []string `json:"accesorios"`
	DestinationArea string   `json:"areaLlegada" validate:"required"`
	Note            string   `json:"observacion" validate:"required"`
}

func (in *MovementInput) normalize() {
	in.Responsible = strings.TrimSpace(in.Responsible)
	in.DestinationArea = strings.TrimSpace(in.DestinationArea)
	in.Note = strings.TrimSpace(in.Note)
	in.Products = cleanCodes(in.Products)
	in.Accessories = cleanCodes(in.Accessories)
}

// RegisterMovement valida la entrada y, dentro de una transacción, resuelve cada código,
// mueve los artículos al área de llegada y guarda el movimiento. Si un código falla no se
// modifica nada.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	input.normalize()
	if err := uc.val.Check(input, validation.Messages{
		"areaLlegada": MsgAreaRequired,
		"observacion": MsgNoteRequired,
	}); err != nil {
		return nil, err
	}
	if len(input.Products)+len(input.Accessories) == 0 {
		return nil, domain.NewValidationError("productos", MsgLinesRequired)
	}
	if code, ok := firstDuplicate(input.Products); ok {
		return nil, duplicateCode(code)
	}
	if code, ok := firstDuplicate(input.Accessories); ok {
		return nil, duplicateCode(code)
	}

	now := uc.now()
	mov := &entity.Movement{
		ID:              primitive.NewObjectIDFromTimestamp(now).Hex(),
		Responsible:     []string{input.Responsible},
		DestinationArea: input.DestinationArea,
		Note:            input.Note,
		Date:            now,
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		accessoryRepo repository.AccessoryRepository,
	) error {
		// Primero se resuelven todos los códigos; ningún artículo cambia si alguno falla.
		products := make([]*entity.Product, 0, len(input.Products))
		for _, code := range input.Products {
			p, err := productRepo.GetByBarcode(code)
			if err != nil {
				return err
			}
			if p == nil {
				return itemNotFound("producto", code)
			}
			if strings.EqualFold(p.Status, entity.StatusSold) {
				return itemSold("producto", code)
			}
			products = append(products, p)
		}
		accessories := make([]*entity.Accessory, 0, len(input.Accessories))
		for _, code := range input.Accessories {
			a, err := accessoryRepo.GetByBarcode(code)
			if err != nil {
				return err
			}
			if a == nil {
				return itemNotFound("accesorio", code)
			}
			if strings.EqualFold(a.Availability, entity.StatusSold) {
				return itemSold("accesorio", code)
			}
			accessories = append(accessories, a)
		}

		sources := newAreaSet()
		for _, p := range products {
			sources.add(p.Location)
			mov.Products = append(mov.Products, entity.MovementItem{Barcode: p.Barcode, Name: p.Name})
			p.Location = input.DestinationArea
			p.Responsible = input.Responsible
			if err := productRepo.Update(p); err != nil {
				return err
			}
		}
		for _, a := range accessories {
			sources.add(a.Location)
			mov.Accessories = append(mov.Accessories, entity.MovementItem{Barcode: a.Barcode, Name: a.Name})
			a.Location = input.DestinationArea
			a.Responsible = input.Responsible
			if err := accessoryRepo.Update(a); err != nil {
				return err
			}
		}
		mov.SourceArea = sources.String()
		return movRepo.Create(mov)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("responsable", input.Responsible).Msg("movimiento rechazado")
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("area_salida", mov.SourceArea).
		Str("area_llegada", mov.DestinationArea).
		Int("lineas", len(mov.Products)+len(mov.Accessories)).
		Msg("movimiento registrado")
	return mov, nil
}

func cleanCodes(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func firstDuplicate(codes []string) (string, bool) {
	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			return c, true
		}
		seen[c] = struct{}{}
	}
	return "", false
}

func duplicateCode(code string) error {
	return &domain.ValidationError{Field: "codigoBarras", Msg: fmt.Sprintf("Código repetido: %s", code), Kind: domain.ErrDuplicate}
}

func itemNotFound(kind, code string) error {
	return &domain.ValidationError{
		Field: "codigoBarras",
		Msg:   fmt.Sprintf("No se encontró el %s con código %s", kind, code),
		Kind:  domain.ErrNotFound,
	}
}

func itemSold(kind, code string) error {
	return &domain.ValidationError{
		Field: "codigoBarras",
		Msg:   fmt.Sprintf("El %s %s ya fue vendido", kind, code),
		Kind:  domain.ErrConflict,
	}
}

// areaSet áreas de salida en orden de aparición.
type areaSet struct {
	seen  map[string]struct{}
	order []string
}

func newAreaSet() *areaSet { return &areaSet{seen: map[string]struct{}{}} }

func (s *areaSet) add(area string) {
	area = strings.TrimSpace(area)
	if area == "" {
		return
	}
	key := strings.ToLower(area)
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.order = append(s.order, area)
}

// String áreas separadas por ", ".
func (s *areaSet) String() string {
	return strings.Join(s.order, ", ")
}
