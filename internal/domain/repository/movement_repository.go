package repository

import "github.com/jhoicas/bodega-app/internal/domain/entity"

// MovementRepository define el puerto de persistencia para Movement (DIP).
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	Update(movement *entity.Movement) error
	// ListByResponsible movimientos en los que participó el usuario (por nombre completo), más recientes primero.
	ListByResponsible(name string, filter ItemFilter) ([]*entity.Movement, error)
	// Areas áreas conocidas, sin repetir.
	Areas() ([]string, error)
}
