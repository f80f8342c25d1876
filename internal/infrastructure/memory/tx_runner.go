package memory

import (
	"context"

	"github.com/jhoicas/bodega-app/internal/application/inventory"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks de forma serializada sobre el Store. Si fn falla,
// restaura productos, accesorios, movimientos y áreas al estado previo. Las
// escrituras de los repositorios fuera de Run esperan a que termine.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner con el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

type snapshot struct {
	products    map[string]*entity.Product
	accessories map[string]*entity.Accessory
	movements   map[string]*entity.Movement
	areas       []string
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		products:    make(map[string]*entity.Product, len(s.products)),
		accessories: make(map[string]*entity.Accessory, len(s.accessories)),
		movements:   make(map[string]*entity.Movement, len(s.movements)),
		areas:       append([]string(nil), s.areas...),
	}
	for k, p := range s.products {
		cp := *p
		snap.products[k] = &cp
	}
	for k, a := range s.accessories {
		cp := *a
		snap.accessories[k] = &cp
	}
	for k, m := range s.movements {
		snap.movements[k] = cloneMovement(m)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.accessories = snap.accessories
	s.movements = snap.movements
	s.areas = snap.areas
}

// Run ejecuta fn con los repositorios del store; Rollback si fn devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	accessoryRepo repository.AccessoryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	snap := r.s.snapshot()
	committed := false
	defer func() {
		if !committed {
			r.s.restore(snap)
		}
	}()

	movRepo := &MovementRepository{s: r.s, inTx: true}
	productRepo := &ProductRepository{s: r.s, inTx: true}
	accessoryRepo := &AccessoryRepository{s: r.s, inTx: true}
	if err := fn(movRepo, productRepo, accessoryRepo); err != nil {
		return err
	}
	committed = true
	return nil
}
