package history

import (
	"context"
	"time"

	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/application/service"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/domain/filter"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

// MovementLister origen de movimientos del bodeguero.
type MovementLister interface {
	ListMovements(ctx context.Context, dateFrom, dateTo string) ([]entity.Movement, error)
}

// ItemReporter origen de productos y accesorios del bodeguero.
type ItemReporter interface {
	ProductsByDate(ctx context.Context, dateFrom, dateTo string) ([]entity.Product, error)
	AccessoriesByDate(ctx context.Context, dateFrom, dateTo string) ([]entity.Accessory, error)
}

// SaleLister origen de ventas.
type SaleLister interface {
	ListByDates(ctx context.Context, dateFrom, dateTo string) ([]entity.Sale, error)
}

var (
	_ MovementLister = (*service.MovementService)(nil)
	_ ItemReporter   = (*service.ReportService)(nil)
	_ SaleLister     = (*service.SaleService)(nil)
)

func NewMovementsView(src MovementLister, notify ports.Notifier, log *logger.Logger) *View[entity.Movement] {
	return NewView(Source[entity.Movement]{
		Name: "movimientos",
		Fetch: func(ctx context.Context, f Filter) ([]entity.Movement, error) {
			return src.ListMovements(ctx, filter.QueryDate(f.From), filter.QueryDate(f.To))
		},
		Date: func(m entity.Movement) time.Time { return m.Date },
		Names: func(m entity.Movement) []string {
			names := make([]string, 0, len(m.Products)+len(m.Accessories)+1)
			for _, p := range m.Products {
				names = append(names, p.Name)
			}
			for _, a := range m.Accessories {
				names = append(names, a.Name)
			}
			return append(names, m.Responsible...)
		},
		Fallback: service.MsgMovementsError,
	}, notify, log)
}

func NewProductsView(src ItemReporter, notify ports.Notifier, log *logger.Logger) *View[entity.Product] {
	return NewView(Source[entity.Product]{
		Name: "productos",
		Fetch: func(ctx context.Context, f Filter) ([]entity.Product, error) {
			return src.ProductsByDate(ctx, filter.QueryDate(f.From), filter.QueryDate(f.To))
		},
		Date:     func(p entity.Product) time.Time { return p.CreatedAt },
		Names:    func(p entity.Product) []string { return []string{p.Name} },
		Fallback: service.MsgProductsError,
	}, notify, log)
}

func NewAccessoriesView(src ItemReporter, notify ports.Notifier, log *logger.Logger) *View[entity.Accessory] {
	return NewView(Source[entity.Accessory]{
		Name: "accesorios",
		Fetch: func(ctx context.Context, f Filter) ([]entity.Accessory, error) {
			return src.AccessoriesByDate(ctx, filter.QueryDate(f.From), filter.QueryDate(f.To))
		},
		Date:     func(a entity.Accessory) time.Time { return a.CreatedAt },
		Names:    func(a entity.Accessory) []string { return []string{a.Name} },
		Fallback: service.MsgAccessoriesError,
	}, notify, log)
}

func NewSalesView(src SaleLister, notify ports.Notifier, log *logger.Logger) *View[entity.Sale] {
	return NewView(Source[entity.Sale]{
		Name: "ventas",
		Fetch: func(ctx context.Context, f Filter) ([]entity.Sale, error) {
			return src.ListByDates(ctx, filter.QueryDate(f.From), filter.QueryDate(f.To))
		},
		Date: func(s entity.Sale) time.Time { return s.Date },
		Names: func(s entity.Sale) []string {
			names := []string{s.Customer, s.Seller}
			for _, it := range s.Items {
				names = append(names, it.Name)
			}
			return names
		},
		Fallback: service.MsgSalesError,
	}, notify, log)
}
