package forms

import (
	"context"

	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/application/service"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

// CategoryLister origen de categorías.
type CategoryLister interface {
	List(ctx context.Context) ([]entity.Category, error)
}

var _ CategoryLister = (*service.CategoryService)(nil)

// CategorySelector selector que carga sus propias opciones. El valor es el nombre de la categoría.
type CategorySelector struct {
	*Dropdown
	src    CategoryLister
	notify ports.Notifier
	log    *logger.Logger
}

func NewCategorySelector(src CategoryLister, notify ports.Notifier, log *logger.Logger) *CategorySelector {
	if log == nil {
		log = logger.Nop()
	}
	if notify == nil {
		notify = ports.NotifierFunc(func(string, string) {})
	}
	return &CategorySelector{
		Dropdown: NewDropdown("Categoría", nil),
		src:      src,
		notify:   notify,
		log:      log.Named("forms"),
	}
}

// Load consulta las categorías y reemplaza las opciones. En error deja la lista vacía.
func (c *CategorySelector) Load(ctx context.Context) error {
	cats, err := c.src.List(ctx)
	if err != nil {
		c.SetOptions(nil)
		c.log.Warn().Err(err).Msg("no se pudieron cargar las categorías")
		c.notify.Alert(ports.TitleError, domain.UserMessage(err, service.MsgCategoriesError))
		return err
	}
	opts := make([]Option, 0, len(cats))
	seen := map[string]struct{}{}
	for _, cat := range cats {
		if cat.Name == "" {
			continue
		}
		if _, ok := seen[cat.Name]; ok {
			continue
		}
		seen[cat.Name] = struct{}{}
		opts = append(opts, Option{Label: cat.Name, Value: cat.Name})
	}
	c.SetOptions(opts)
	return nil
}
