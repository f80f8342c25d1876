package inventory

import (
	"context"

	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, responsible string, in dto.RegisterMovementRequest) (*entity.Movement, error) {
	input := MovementInput{
		Responsible:     responsible,
		DestinationArea: in.DestinationArea,
		Note:            in.Note,
	}
	for _, p := range in.Products {
		input.Products = append(input.Products, p.Barcode)
	}
	for _, a := range in.Accessories {
		input.Accessories = append(input.Accessories, a.Barcode)
	}
	return uc.RegisterMovement(ctx, input)
}
