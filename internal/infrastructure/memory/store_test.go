package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/domain/repository"
	"github.com/jhoicas/bodega-app/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ── Seed ─────────────────────────────────────────────────────────────────────

func TestSeed_UsuarioMiguel(t *testing.T) {
	s := memory.NewStore()
	require.NoError(t, memory.Seed(s, memory.SeedOptions{Seed: 42, Products: 5, Accessories: 3, Movements: 2, Sales: 1}))

	u, err := memory.NewUserRepository(s).GetByEmail("MIGUEL@correo.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, memory.FixtureUserID, u.ID)
	assert.Equal(t, "Miguel Carvajal", u.FullName())
	assert.Equal(t, entity.RoleBodeguero, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(memory.FixturePassword)))

	cats, err := memory.NewCategoryRepository(s).List()
	require.NoError(t, err)
	assert.Len(t, cats, 5)

	areas, err := memory.NewMovementRepository(s).Areas()
	require.NoError(t, err)
	assert.Subset(t, areas, memory.Areas)
}

func TestSeed_MismaSemillaMismoCatalogo(t *testing.T) {
	names := func() []string {
		s := memory.NewStore()
		require.NoError(t, memory.Seed(s, memory.SeedOptions{Seed: 7, Products: 6}))
		list, err := memory.NewProductRepository(s).List(memory.ItemFilterAll)
		require.NoError(t, err)
		var out []string
		for _, p := range list {
			out = append(out, p.Barcode)
		}
		return out
	}
	assert.ElementsMatch(t, names(), names())
}

// ── Repositorios ─────────────────────────────────────────────────────────────

func TestProductRepository_DuplicadoYFiltros(t *testing.T) {
	s := memory.NewStore()
	repo := memory.NewProductRepository(s)
	day := time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(&entity.Product{Barcode: "P1", Location: "Vitrina", Responsible: "Ana", Status: entity.StatusAvailable, CreatedAt: day}))
	require.NoError(t, repo.Create(&entity.Product{Barcode: "P2", Location: "Bodega", Responsible: "Luis", Status: entity.StatusSold, CreatedAt: day.AddDate(0, 0, -5)}))

	err := repo.Create(&entity.Product{Barcode: "P1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	from := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	list, err := repo.List(repository.ItemFilter{From: &from, To: &from})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "P1", list[0].Barcode)

	list, err = repo.List(repository.ItemFilter{Status: entity.StatusSold})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "P2", list[0].Barcode)

	areas, _ := memory.NewMovementRepository(s).Areas()
	assert.Equal(t, []string{"Vitrina", "Bodega"}, areas)
}

func TestProductRepository_DevuelveCopias(t *testing.T) {
	s := memory.NewStore()
	repo := memory.NewProductRepository(s)
	require.NoError(t, repo.Create(&entity.Product{Barcode: "P1", Location: "Bodega"}))

	p, err := repo.GetByBarcode("P1")
	require.NoError(t, err)
	p.Location = "Vitrina"

	again, _ := repo.GetByBarcode("P1")
	assert.Equal(t, "Bodega", again.Location)
}

func TestMovementRepository_PorResponsableMasRecientesPrimero(t *testing.T) {
	s := memory.NewStore()
	repo := memory.NewMovementRepository(s)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(&entity.Movement{ID: "a", Responsible: []string{"Miguel Carvajal"}, Date: base}))
	require.NoError(t, repo.Create(&entity.Movement{ID: "b", Responsible: []string{"miguel carvajal"}, Date: base.AddDate(0, 0, 2)}))
	require.NoError(t, repo.Create(&entity.Movement{ID: "c", Responsible: []string{"Ana"}, Date: base}))

	list, err := repo.ListByResponsible("Miguel Carvajal", repository.ItemFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

func TestTxRunner_RollbackRestauraEstado(t *testing.T) {
	s := memory.NewStore()
	require.NoError(t, memory.NewProductRepository(s).Create(&entity.Product{Barcode: "P1", Location: "Bodega"}))
	runner := memory.NewTxRunner(s)
	boom := errors.New("boom")

	err := runner.Run(context.Background(), func(movRepo repository.MovementRepository, productRepo repository.ProductRepository, _ repository.AccessoryRepository) error {
		p, _ := productRepo.GetByBarcode("P1")
		p.Location = "Vitrina"
		require.NoError(t, productRepo.Update(p))
		require.NoError(t, movRepo.Create(&entity.Movement{ID: "m1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, _ := memory.NewProductRepository(s).GetByBarcode("P1")
	assert.Equal(t, "Bodega", p.Location)
	m, _ := memory.NewMovementRepository(s).GetByID("m1")
	assert.Nil(t, m)
}

func TestTxRunner_RollbackNoBorraEscriturasConcurrentes(t *testing.T) {
	s := memory.NewStore()
	runner := memory.NewTxRunner(s)
	products := memory.NewProductRepository(s)
	boom := errors.New("boom")

	inside := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- runner.Run(context.Background(), func(movRepo repository.MovementRepository, _ repository.ProductRepository, _ repository.AccessoryRepository) error {
			close(inside)
			<-release
			_ = movRepo.Create(&entity.Movement{ID: "m1"})
			return boom
		})
	}()
	<-inside

	created := make(chan error, 1)
	go func() { created <- products.Create(&entity.Product{Barcode: "770000", Location: "Bodega"}) }()

	// Create espera a que la transacción termine.
	select {
	case err := <-created:
		t.Fatalf("Create no esperó la transacción: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
	close(release)

	require.ErrorIs(t, <-txDone, boom)
	require.NoError(t, <-created)

	p, err := products.GetByBarcode("770000")
	require.NoError(t, err)
	require.NotNil(t, p)
	m, _ := memory.NewMovementRepository(s).GetByID("m1")
	assert.Nil(t, m)
}

func TestTxRunner_CommitConservaCambios(t *testing.T) {
	s := memory.NewStore()
	runner := memory.NewTxRunner(s)

	err := runner.Run(context.Background(), func(movRepo repository.MovementRepository, _ repository.ProductRepository, _ repository.AccessoryRepository) error {
		return movRepo.Create(&entity.Movement{ID: "m1", DestinationArea: "Taller"})
	})
	require.NoError(t, err)

	m, _ := memory.NewMovementRepository(s).GetByID("m1")
	require.NotNil(t, m)
	areas, _ := memory.NewMovementRepository(s).Areas()
	assert.Contains(t, areas, "Taller")
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := memory.NewTxRunner(memory.NewStore()).Run(ctx, func(repository.MovementRepository, repository.ProductRepository, repository.AccessoryRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
