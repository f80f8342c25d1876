package memory

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jhoicas/bodega-app/internal/application/auth"
	"github.com/jhoicas/bodega-app/internal/application/usecase"
	"github.com/jhoicas/bodega-app/internal/domain/catalog"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Usuario fijo de desarrollo; coincide con el de las pruebas del cliente.
const (
	FixtureUserID    = "123"
	FixtureEmail     = "miguel@correo.com"
	FixturePassword  = "1234"
	FixtureFirstName = "Miguel"
	FixtureLastName  = "Carvajal"
)

// Areas áreas iniciales de la bodega.
var Areas = []string{"Bodega", "Vitrina", "Taller", "Mostrador"}

var (
	categories = []struct{ name, description string }{
		{"iPhone", "Teléfonos Apple"},
		{"iPad", "Tabletas Apple"},
		{"MacBook", "Portátiles Apple"},
		{"Apple Watch", "Relojes Apple"},
		{"AirPods", "Audífonos Apple"},
	}
	models = map[string][]string{
		"iPhone":      {"iPhone 13", "iPhone 14", "iPhone 15", "iPhone 15 Pro", "iPhone 15 Pro Max"},
		"iPad":        {"iPad Air", "iPad Pro 11", "iPad mini"},
		"MacBook":     {"MacBook Air M2", "MacBook Pro 14", "MacBook Pro 16"},
		"Apple Watch": {"Apple Watch SE", "Apple Watch Series 9", "Apple Watch Ultra 2"},
	}
	colors          = []string{"Negro", "Blanco", "Azul", "Rosado", "Gris espacial", "Plata", "Titanio natural"}
	accessoryModels = []string{"Cargador USB-C 20W", "Cable USB-C a Lightning", "Funda MagSafe", "AirTag", "Protector de pantalla", "Adaptador USB-C a jack"}
	movementNotes   = []string{"Reposición de vitrina", "Ingreso a revisión técnica", "Devolución a bodega", "Traslado por inventario", "Exhibición nueva colección"}
)

// SeedOptions tamaño de los datos de ejemplo.
type SeedOptions struct {
	Seed        uint64 // 0 = aleatoria
	Products    int
	Accessories int
	Movements   int
	Sales       int
}

// DefaultSeedOptions tamaños usados por cmd/sandbox.
func DefaultSeedOptions(seed int64) SeedOptions {
	return SeedOptions{Seed: uint64(seed), Products: 40, Accessories: 20, Movements: 12, Sales: 8}
}

// Seed carga usuarios, categorías, áreas y un catálogo generado con gofakeit.
// El usuario Miguel siempre existe con id 123.
func Seed(s *Store, opts SeedOptions) error {
	f := gofakeit.New(opts.Seed)
	now := time.Now()

	if err := seedUsers(s); err != nil {
		return err
	}
	for _, a := range Areas {
		s.AddArea(a)
	}
	catRepo := NewCategoryRepository(s)
	for _, c := range categories {
		if err := catRepo.Create(&entity.Category{ID: primitive.NewObjectID().Hex(), Name: c.name, Description: c.description}); err != nil {
			return fmt.Errorf("seed categoría %s: %w", c.name, err)
		}
	}

	miguel := FixtureFirstName + " " + FixtureLastName
	productRepo := NewProductRepository(s)
	var sold []*entity.Product
	for i := 0; i < opts.Products; i++ {
		category := pick(f, []string{"iPhone", "iPad", "MacBook", "Apple Watch"})
		created := f.DateRange(now.AddDate(0, -3, 0), now)
		p := &entity.Product{
			ID:          primitive.NewObjectIDFromTimestamp(created).Hex(),
			Barcode:     usecase.Barcode(f.Number(0, 999_999_999)),
			ModelCode:   fmt.Sprintf("M%s%04d", category[:1], f.Number(0, 9999)),
			Serial:      fmt.Sprintf("SN%08d", f.Number(0, 99_999_999)),
			Name:        pick(f, models[category]),
			Color:       pick(f, colors),
			Capacity:    pick(f, catalog.CapacityOptions(category)),
			Price:       thousands(f.Price(1_500_000, 9_000_000)),
			Type:        pick(f, catalog.TypeOptions()),
			Category:    category,
			Status:      entity.StatusAvailable,
			Responsible: miguel,
			Location:    pick(f, Areas),
			CreatedAt:   created,
		}
		if f.Number(1, 8) == 1 {
			p.Status = entity.StatusSold
		}
		if err := productRepo.Create(p); err != nil {
			// colisión de código generado: se omite la unidad
			continue
		}
		if p.Status == entity.StatusSold {
			sold = append(sold, p)
		}
	}

	accessoryRepo := NewAccessoryRepository(s)
	for i := 0; i < opts.Accessories; i++ {
		created := f.DateRange(now.AddDate(0, -3, 0), now)
		name := pick(f, accessoryModels)
		a := &entity.Accessory{
			ID:           primitive.NewObjectIDFromTimestamp(created).Hex(),
			Barcode:      usecase.Barcode(f.Number(0, 999_999_999)),
			ModelCode:    fmt.Sprintf("ACCS%04d", f.Number(0, 9999)),
			Name:         name,
			Price:        thousands(f.Price(40_000, 400_000)),
			Availability: entity.StatusAvailable,
			Category:     "AirPods",
			Responsible:  miguel,
			Location:     pick(f, Areas),
			CreatedAt:    created,
		}
		if err := accessoryRepo.Create(a); err != nil {
			continue
		}
	}

	seedMovements(s, f, opts.Movements, miguel, now)
	seedSales(s, f, sold, opts.Sales)
	return nil
}

func seedUsers(s *Store) error {
	users := []struct {
		id, first, last, email, password, role string
	}{
		{FixtureUserID, FixtureFirstName, FixtureLastName, FixtureEmail, FixturePassword, entity.RoleBodeguero},
		{uuid.New().String(), "Laura", "Gómez", "admin@correo.com", "admin123", entity.RoleAdmin},
		{uuid.New().String(), "Andrés", "Ríos", "vendedor@correo.com", "1234", entity.RoleVendedor},
	}
	repo := NewUserRepository(s)
	for _, u := range users {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return fmt.Errorf("seed usuario %s: %w", u.email, err)
		}
		if err := repo.Create(&entity.User{
			ID: u.id, FirstName: u.first, LastName: u.last, Email: u.email, Role: u.role, PasswordHash: hash,
		}); err != nil {
			return fmt.Errorf("seed usuario %s: %w", u.email, err)
		}
	}
	return nil
}

// seedMovements movimientos históricos de Miguel sobre artículos existentes.
// No cambian la ubicación actual de los artículos.
func seedMovements(s *Store, f *gofakeit.Faker, n int, responsible string, now time.Time) {
	products, _ := NewProductRepository(s).List(ItemFilterAll)
	accessories, _ := NewAccessoryRepository(s).List(ItemFilterAll)
	if len(products) == 0 {
		return
	}
	repo := NewMovementRepository(s)
	for i := 0; i < n; i++ {
		date := f.DateRange(now.AddDate(0, -2, 0), now)
		src := pick(f, Areas)
		dst := pick(f, Areas)
		for dst == src {
			dst = pick(f, Areas)
		}
		m := &entity.Movement{
			ID:              primitive.NewObjectIDFromTimestamp(date).Hex(),
			Responsible:     []string{responsible},
			SourceArea:      src,
			DestinationArea: dst,
			Note:            pick(f, movementNotes),
			Date:            date,
		}
		for j := 0; j < f.Number(1, 3); j++ {
			p := products[f.Number(0, len(products)-1)]
			if !containsItem(m.Products, p.Barcode) {
				m.Products = append(m.Products, entity.MovementItem{Barcode: p.Barcode, Name: p.Name})
			}
		}
		if len(accessories) > 0 && f.Bool() {
			a := accessories[f.Number(0, len(accessories)-1)]
			m.Accessories = append(m.Accessories, entity.MovementItem{Barcode: a.Barcode, Name: a.Name})
		}
		_ = repo.Create(m)
	}
}

func seedSales(s *Store, f *gofakeit.Faker, sold []*entity.Product, n int) {
	repo := NewSaleRepository(s)
	for i := 0; i < n && i < len(sold); i++ {
		p := sold[i]
		date := p.CreatedAt.Add(time.Duration(f.Number(1, 72)) * time.Hour)
		_ = repo.Create(&entity.Sale{
			ID:       primitive.NewObjectIDFromTimestamp(date).Hex(),
			Seller:   "Andrés Ríos",
			Customer: f.Name(),
			Items:    []entity.MovementItem{{Barcode: p.Barcode, Name: p.Name}},
			Total:    p.Price,
			Date:     date,
		})
	}
}

func containsItem(items []entity.MovementItem, barcode string) bool {
	for _, it := range items {
		if it.Barcode == barcode {
			return true
		}
	}
	return false
}

func pick(f *gofakeit.Faker, values []string) string {
	return values[f.Number(0, len(values)-1)]
}

// thousands redondea un precio a miles de pesos.
func thousands(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Div(decimal.NewFromInt(1000)).Round(0).Mul(decimal.NewFromInt(1000))
}
