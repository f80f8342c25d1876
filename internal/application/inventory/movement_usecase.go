package inventory

import (
	"strings"

	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MovementUseCase consultas de movimientos y edición de la observación.
type MovementUseCase struct {
	repo repository.MovementRepository
}

func NewMovementUseCase(repo repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{repo: repo}
}

// Get movimiento por id (ObjectID en hexadecimal).
func (uc *MovementUseCase) Get(id string) (*entity.Movement, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, domain.NewValidationError("id", MsgInvalidMovementID)
	}
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &domain.ValidationError{Field: "id", Msg: MsgMovementNotFound, Kind: domain.ErrNotFound}
	}
	return m, nil
}

// UpdateNote reemplaza la observación; es el único campo editable.
func (uc *MovementUseCase) UpdateNote(id, note string) (*entity.Movement, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, domain.NewValidationError("observacion", MsgNoteRequired)
	}
	m, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	m.Note = note
	if err := uc.repo.Update(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListByResponsible movimientos del usuario dentro del rango, más recientes primero.
func (uc *MovementUseCase) ListByResponsible(name string, f repository.ItemFilter) ([]*entity.Movement, error) {
	return uc.repo.ListByResponsible(name, f)
}

// Areas áreas conocidas para el selector de destino.
func (uc *MovementUseCase) Areas() ([]string, error) {
	return uc.repo.Areas()
}
