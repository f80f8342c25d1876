// Package history implementa las vistas de historial (movimientos, productos,
// accesorios y ventas): consulta al backend, filtro local y exportación.
package history

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/filter"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

// ErrSuperseded la respuesta llegó después de una consulta más nueva y se descartó.
var ErrSuperseded = errors.New("consulta reemplazada por una más reciente")

// Filter filtros de una vista. From y To son inclusivos; nil no limita.
type Filter struct {
	From *time.Time
	To   *time.Time
	Name string
}

// Fetcher consulta el backend con el filtro vigente.
type Fetcher[T any] func(ctx context.Context, f Filter) ([]T, error)

// Source describe cómo una vista consulta y filtra sus registros.
type Source[T any] struct {
	Name     string
	Fetch    Fetcher[T]
	Date     func(T) time.Time
	Names    func(T) []string
	Fallback string
}

// View vista de historial genérica. Cada cambio de filtro hace una consulta nueva;
// la consulta anterior se cancela y su respuesta se descarta.
type View[T any] struct {
	src    Source[T]
	notify ports.Notifier
	log    *logger.Logger

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	filter  Filter
	items   []T
	loading bool
	err     error
}

func NewView[T any](src Source[T], notify ports.Notifier, log *logger.Logger) *View[T] {
	if log == nil {
		log = logger.Nop()
	}
	if notify == nil {
		notify = ports.NotifierFunc(func(string, string) {})
	}
	return &View[T]{src: src, notify: notify, log: log.Named("history." + src.Name)}
}

// SetFilter reemplaza el filtro y vuelve a consultar.
func (v *View[T]) SetFilter(ctx context.Context, f Filter) ([]T, error) {
	v.mu.Lock()
	v.filter = f
	v.mu.Unlock()
	return v.Refresh(ctx)
}

// Refresh consulta con el filtro vigente. Si mientras tanto empieza otra consulta,
// devuelve ErrSuperseded sin tocar el estado de la vista.
// Una falla vacía la lista y muestra la alerta correspondiente.
func (v *View[T]) Refresh(ctx context.Context) ([]T, error) {
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	v.gen++
	gen := v.gen
	fctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	f := v.filter
	v.loading = true
	v.mu.Unlock()

	fetched, err := v.src.Fetch(fctx, f)

	v.mu.Lock()
	if gen != v.gen {
		v.mu.Unlock()
		cancel()
		v.log.Debug().Uint64("gen", gen).Msg("respuesta descartada")
		return nil, ErrSuperseded
	}
	cancel()
	v.cancel = nil
	v.loading = false
	if err != nil {
		v.items = nil
		v.err = err
		v.mu.Unlock()
		v.log.Warn().Err(err).Msg("consulta fallida")
		v.notify.Alert(ports.TitleError, domain.UserMessage(err, v.src.Fallback))
		return nil, err
	}
	items := v.apply(fetched, f)
	v.items = items
	v.err = nil
	v.mu.Unlock()

	v.log.Debug().Int("fetched", len(fetched)).Int("shown", len(items)).Msg("vista actualizada")
	return append([]T(nil), items...), nil
}

// apply filtra localmente por rango de fechas y nombre.
func (v *View[T]) apply(items []T, f Filter) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if v.src.Date != nil && !filter.InDateRange(v.src.Date(it), f.From, f.To) {
			continue
		}
		if v.src.Names != nil && !matchAny(v.src.Names(it), f.Name) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchAny(names []string, query string) bool {
	if len(names) == 0 {
		return filter.MatchName("", query)
	}
	for _, n := range names {
		if filter.MatchName(n, query) {
			return true
		}
	}
	return false
}

// Items copia de la lista mostrada (ya filtrada).
func (v *View[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]T(nil), v.items...)
}

func (v *View[T]) Filter() Filter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

func (v *View[T]) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Err error de la última consulta, nil si tuvo éxito.
func (v *View[T]) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Close cancela la consulta en curso.
func (v *View[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.gen++
	v.loading = false
}
