// Package memory implementa los repositorios del sandbox en memoria.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/domain/filter"
	"github.com/jhoicas/bodega-app/internal/domain/repository"
)

// Store datos del sandbox. Los repositorios son vistas sobre el mismo Store.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users       map[string]*entity.User
	products    map[string]*entity.Product   // por código de barras
	accessories map[string]*entity.Accessory // por código de barras
	categories  map[string]*entity.Category
	movements   map[string]*entity.Movement
	sales       []*entity.Sale
	areas       []string
}

func NewStore() *Store {
	return &Store{
		users:       map[string]*entity.User{},
		products:    map[string]*entity.Product{},
		accessories: map[string]*entity.Accessory{},
		categories:  map[string]*entity.Category{},
		movements:   map[string]*entity.Movement{},
	}
}

// AddArea registra un área si no existía.
func (s *Store) AddArea(name string) {
	defer s.lockWrite(false)()
	s.addAreaLocked(name)
}

// lockWrite toma mu para escribir. Fuera de una transacción también toma txMu,
// así un rollback nunca pisa escrituras ya confirmadas por otro llamador.
func (s *Store) lockWrite(inTx bool) func() {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

func (s *Store) addAreaLocked(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	for _, a := range s.areas {
		if strings.EqualFold(a, name) {
			return
		}
	}
	s.areas = append(s.areas, name)
}

func matchItem(responsible, location, status string, f repository.ItemFilter) bool {
	if f.Responsible != "" && !strings.EqualFold(responsible, f.Responsible) {
		return false
	}
	if f.Location != "" && !strings.EqualFold(location, f.Location) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(status, f.Status) {
		return false
	}
	return true
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

type UserRepository struct{ s *Store }

func NewUserRepository(s *Store) *UserRepository { return &UserRepository{s: s} }

func (r *UserRepository) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return errDuplicate("usuario", u.Email)
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// ── Productos ────────────────────────────────────────────────────────────────

type ProductRepository struct {
	s    *Store
	inTx bool
}

func NewProductRepository(s *Store) *ProductRepository { return &ProductRepository{s: s} }

func (r *ProductRepository) Create(p *entity.Product) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.products[p.Barcode]; ok {
		return errDuplicate("producto", p.Barcode)
	}
	cp := *p
	r.s.products[p.Barcode] = &cp
	r.s.addAreaLocked(p.Location)
	return nil
}

func (r *ProductRepository) GetByBarcode(barcode string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[barcode]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepository) Update(p *entity.Product) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.products[p.Barcode]; !ok {
		return errNotFound("producto", p.Barcode)
	}
	cp := *p
	r.s.products[p.Barcode] = &cp
	r.s.addAreaLocked(p.Location)
	return nil
}

// List productos filtrados, más recientes primero.
func (r *ProductRepository) List(f repository.ItemFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if !matchItem(p.Responsible, p.Location, p.Status, f) || !filter.InDateRange(p.CreatedAt, f.From, f.To) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Barcode < out[j].Barcode
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ── Accesorios ───────────────────────────────────────────────────────────────

type AccessoryRepository struct {
	s    *Store
	inTx bool
}

func NewAccessoryRepository(s *Store) *AccessoryRepository { return &AccessoryRepository{s: s} }

func (r *AccessoryRepository) Create(a *entity.Accessory) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.accessories[a.Barcode]; ok {
		return errDuplicate("accesorio", a.Barcode)
	}
	cp := *a
	r.s.accessories[a.Barcode] = &cp
	r.s.addAreaLocked(a.Location)
	return nil
}

func (r *AccessoryRepository) GetByBarcode(barcode string) (*entity.Accessory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.accessories[barcode]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *AccessoryRepository) Update(a *entity.Accessory) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.accessories[a.Barcode]; !ok {
		return errNotFound("accesorio", a.Barcode)
	}
	cp := *a
	r.s.accessories[a.Barcode] = &cp
	r.s.addAreaLocked(a.Location)
	return nil
}

func (r *AccessoryRepository) List(f repository.ItemFilter) ([]*entity.Accessory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Accessory, 0, len(r.s.accessories))
	for _, a := range r.s.accessories {
		if !matchItem(a.Responsible, a.Location, a.Availability, f) || !filter.InDateRange(a.CreatedAt, f.From, f.To) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Barcode < out[j].Barcode
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ── Categorías ───────────────────────────────────────────────────────────────

type CategoryRepository struct{ s *Store }

func NewCategoryRepository(s *Store) *CategoryRepository { return &CategoryRepository{s: s} }

func (r *CategoryRepository) Create(c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if strings.EqualFold(existing.Name, c.Name) {
			return errDuplicate("categoría", c.Name)
		}
	}
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepository) GetByID(id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepository) GetByName(name string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

// List categorías ordenadas por nombre.
func (r *CategoryRepository) List() ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type MovementRepository struct {
	s    *Store
	inTx bool
}

func NewMovementRepository(s *Store) *MovementRepository { return &MovementRepository{s: s} }

func cloneMovement(m *entity.Movement) *entity.Movement {
	cp := *m
	cp.Products = append([]entity.MovementItem(nil), m.Products...)
	cp.Accessories = append([]entity.MovementItem(nil), m.Accessories...)
	cp.Responsible = append([]string(nil), m.Responsible...)
	return &cp
}

func (r *MovementRepository) Create(m *entity.Movement) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.movements[m.ID]; ok {
		return errDuplicate("movimiento", m.ID)
	}
	r.s.movements[m.ID] = cloneMovement(m)
	r.s.addAreaLocked(m.SourceArea)
	r.s.addAreaLocked(m.DestinationArea)
	return nil
}

func (r *MovementRepository) GetByID(id string) (*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	return cloneMovement(m), nil
}

func (r *MovementRepository) Update(m *entity.Movement) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.movements[m.ID]; !ok {
		return errNotFound("movimiento", m.ID)
	}
	r.s.movements[m.ID] = cloneMovement(m)
	return nil
}

func (r *MovementRepository) ListByResponsible(name string, f repository.ItemFilter) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if name != "" && !containsFold(m.Responsible, name) {
			continue
		}
		if !filter.InDateRange(m.Date, f.From, f.To) {
			continue
		}
		out = append(out, cloneMovement(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *MovementRepository) Areas() ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]string(nil), r.s.areas...), nil
}

func containsFold(values []string, v string) bool {
	for _, s := range values {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// ── Ventas ───────────────────────────────────────────────────────────────────

type SaleRepository struct{ s *Store }

func NewSaleRepository(s *Store) *SaleRepository { return &SaleRepository{s: s} }

func (r *SaleRepository) Create(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sale
	cp.Items = append([]entity.MovementItem(nil), sale.Items...)
	r.s.sales = append(r.s.sales, &cp)
	return nil
}

func (r *SaleRepository) List(f repository.ItemFilter) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Sale
	for _, s := range r.s.sales {
		if f.Responsible != "" && !strings.EqualFold(s.Seller, f.Responsible) {
			continue
		}
		if !filter.InDateRange(s.Date, f.From, f.To) {
			continue
		}
		cp := *s
		cp.Items = append([]entity.MovementItem(nil), s.Items...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

var (
	_ repository.UserRepository      = (*UserRepository)(nil)
	_ repository.ProductRepository   = (*ProductRepository)(nil)
	_ repository.AccessoryRepository = (*AccessoryRepository)(nil)
	_ repository.CategoryRepository  = (*CategoryRepository)(nil)
	_ repository.MovementRepository  = (*MovementRepository)(nil)
	_ repository.SaleRepository      = (*SaleRepository)(nil)
)

// ItemFilterAll filtro vacío.
var ItemFilterAll = repository.ItemFilter{}
