package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/domain/filter"
	"github.com/jhoicas/bodega-app/internal/domain/repository"
)

// userLookup resuelve el usuario del token; lo implementa *auth.AuthUseCase.
type userLookup interface {
	User(userID string) (*entity.User, error)
}

// currentUser usuario autenticado completo.
func currentUser(c *fiber.Ctx, users userLookup) (*entity.User, error) {
	id := GetUserID(c)
	if id == "" {
		return nil, domain.ErrUnauthorized
	}
	return users.User(id)
}

// rangeFilter lee desde/hasta (yyyy-mm-dd o dd/mm/yyyy). Vacíos no filtran.
func rangeFilter(c *fiber.Ctx) (repository.ItemFilter, error) {
	var f repository.ItemFilter
	from, err := filter.ParseDay(c.Query("desde"), time.Local)
	if err != nil {
		return f, domain.NewValidationError("desde", err.Error())
	}
	to, err := filter.ParseDay(c.Query("hasta"), time.Local)
	if err != nil {
		return f, domain.NewValidationError("hasta", err.Error())
	}
	f.From, f.To = from, to
	return f, nil
}
