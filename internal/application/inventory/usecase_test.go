package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/application/inventory"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	products := memory.NewProductRepository(s)
	require.NoError(t, products.Create(&entity.Product{Barcode: "P1", Name: "iPhone 15", Location: "Bodega", Status: entity.StatusAvailable, Price: decimal.NewFromInt(4500000), Capacity: "128GB", Category: "iPhone"}))
	require.NoError(t, products.Create(&entity.Product{Barcode: "P2", Name: "iPad Air", Location: "Taller", Status: entity.StatusAvailable, Capacity: "64GB", Category: "iPad"}))
	require.NoError(t, products.Create(&entity.Product{Barcode: "P3", Name: "iPhone 14", Location: "Bodega", Status: entity.StatusSold}))
	require.NoError(t, memory.NewAccessoryRepository(s).Create(&entity.Accessory{Barcode: "A1", Name: "Cable USB-C", Location: "Bodega", Availability: entity.StatusAvailable}))
	return s
}

// ── Registro de movimientos ──────────────────────────────────────────────────

func TestRegisterMovement_MueveArticulosYGuarda(t *testing.T) {
	s := newStore(t)
	uc := inventory.NewRegisterMovementUseCase(memory.NewTxRunner(s), nil)

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Responsible:     "Miguel Carvajal",
		Products:        []string{"P1", " P2 "},
		Accessories:     []string{"A1"},
		DestinationArea: " Vitrina ",
		Note:            "Reposición",
	})
	require.NoError(t, err)

	assert.True(t, primitive.IsValidObjectID(mov.ID))
	assert.Equal(t, "Bodega, Taller", mov.SourceArea)
	assert.Equal(t, "Vitrina", mov.DestinationArea)
	assert.Equal(t, []string{"Miguel Carvajal"}, mov.Responsible)
	assert.Equal(t, []entity.MovementItem{{Barcode: "P1", Name: "iPhone 15"}, {Barcode: "P2", Name: "iPad Air"}}, mov.Products)

	p, _ := memory.NewProductRepository(s).GetByBarcode("P2")
	assert.Equal(t, "Vitrina", p.Location)
	assert.Equal(t, "Miguel Carvajal", p.Responsible)
	a, _ := memory.NewAccessoryRepository(s).GetByBarcode("A1")
	assert.Equal(t, "Vitrina", a.Location)

	stored, _ := memory.NewMovementRepository(s).GetByID(mov.ID)
	require.NotNil(t, stored)
}

func TestRegisterMovement_CodigoInexistenteNoModificaNada(t *testing.T) {
	s := newStore(t)
	uc := inventory.NewRegisterMovementUseCase(memory.NewTxRunner(s), nil)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Responsible: "Miguel Carvajal", Products: []string{"P1", "NOPE"}, DestinationArea: "Vitrina", Note: "x",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, domain.UserMessage(err, ""), "NOPE")

	p, _ := memory.NewProductRepository(s).GetByBarcode("P1")
	assert.Equal(t, "Bodega", p.Location)
	list, _ := memory.NewMovementRepository(s).ListByResponsible("", memory.ItemFilterAll)
	assert.Empty(t, list)
}

func TestRegisterMovement_ProductoVendidoEsConflicto(t *testing.T) {
	uc := inventory.NewRegisterMovementUseCase(memory.NewTxRunner(newStore(t)), nil)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Responsible: "Miguel Carvajal", Products: []string{"P3"}, DestinationArea: "Vitrina", Note: "x",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	uc := inventory.NewRegisterMovementUseCase(memory.NewTxRunner(newStore(t)), nil)
	ctx := context.Background()

	cases := []struct {
		name  string
		input inventory.MovementInput
		msg   string
		kind  error
	}{
		{"sin área", inventory.MovementInput{Responsible: "M", Products: []string{"P1"}, DestinationArea: "  ", Note: "x"}, inventory.MsgAreaRequired, domain.ErrInvalidInput},
		{"sin observación", inventory.MovementInput{Responsible: "M", Products: []string{"P1"}, DestinationArea: "Vitrina"}, inventory.MsgNoteRequired, domain.ErrInvalidInput},
		{"sin líneas", inventory.MovementInput{Responsible: "M", Products: []string{" "}, DestinationArea: "Vitrina", Note: "x"}, inventory.MsgLinesRequired, domain.ErrInvalidInput},
		{"repetido", inventory.MovementInput{Responsible: "M", Products: []string{"P1", "P1"}, DestinationArea: "Vitrina", Note: "x"}, "Código repetido: P1", domain.ErrDuplicate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterMovement(ctx, tc.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.kind)
			assert.Equal(t, tc.msg, domain.UserMessage(err, ""))
		})
	}
}

func TestRegisterMovementFromRequest_SoloCodigos(t *testing.T) {
	uc := inventory.NewRegisterMovementUseCase(memory.NewTxRunner(newStore(t)), nil)

	mov, err := uc.RegisterMovementFromRequest(context.Background(), "Miguel Carvajal", dto.RegisterMovementRequest{
		Products:        []dto.MovementProductRef{{Barcode: "P1"}},
		Accessories:     []dto.MovementAccessoryRef{},
		DestinationArea: "Taller",
		Note:            "Revisión",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bodega", mov.SourceArea)
}

// ── Consultas ────────────────────────────────────────────────────────────────

func TestMovementUseCase_ActualizarObservacion(t *testing.T) {
	s := newStore(t)
	id := primitive.NewObjectID().Hex()
	require.NoError(t, memory.NewMovementRepository(s).Create(&entity.Movement{ID: id, Note: "antes", Date: time.Now()}))
	uc := inventory.NewMovementUseCase(memory.NewMovementRepository(s))

	m, err := uc.UpdateNote(id, " después ")
	require.NoError(t, err)
	assert.Equal(t, "después", m.Note)

	_, err = uc.UpdateNote(id, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Get("no-es-objectid")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Get(primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockUseCase_SoloDisponiblesAgrupados(t *testing.T) {
	s := newStore(t)
	uc := inventory.NewStockUseCase(memory.NewProductRepository(s), memory.NewAccessoryRepository(s))

	summary, err := uc.Available(entity.StockFilter{})
	require.NoError(t, err)
	assert.Len(t, summary.Products, 2)
	assert.Len(t, summary.Accessories, 1)

	summary, err = uc.Available(entity.StockFilter{Name: "IPHONE", Category: "iphone"})
	require.NoError(t, err)
	require.Len(t, summary.Products, 1)
	assert.Equal(t, []string{"P1"}, summary.Products[0].Barcodes)
	assert.Empty(t, summary.Accessories)
}
