package history_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/bodega-app/internal/application/history"
	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alerts struct {
	mu   sync.Mutex
	msgs []string
}

func (a *alerts) Alert(_, msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.msgs = append(a.msgs, msg)
}

type fakeMovements struct {
	mu    sync.Mutex
	items []entity.Movement
	err   error
	calls [][2]string
}

func (f *fakeMovements) ListMovements(_ context.Context, from, to string) ([]entity.Movement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, [2]string{from, to})
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.Local)
}

func ptr(t time.Time) *time.Time { return &t }

func sampleMovements() []entity.Movement {
	return []entity.Movement{
		{ID: "1", Date: day(2024, 3, 19, 23), Products: []entity.MovementItem{{Barcode: "P1", Name: "iPhone 15"}}},
		{ID: "2", Date: day(2024, 3, 20, 0), Products: []entity.MovementItem{{Barcode: "P2", Name: "iPad Air"}}},
		{ID: "3", Date: day(2024, 3, 22, 23), Accessories: []entity.MovementItem{{Barcode: "A1", Name: "Cable USB-C"}}},
		{ID: "4", Date: day(2024, 3, 23, 0), Responsible: []string{"Miguel Carvajal"}},
	}
}

func ids(items []entity.Movement) []string {
	out := make([]string, 0, len(items))
	for _, m := range items {
		out = append(out, m.ID)
	}
	return out
}

// ── Filtros ──────────────────────────────────────────────────────────────────

func TestView_RangoInclusivoYFechasISO(t *testing.T) {
	src := &fakeMovements{items: sampleMovements()}
	v := history.NewMovementsView(src, &alerts{}, nil)

	items, err := v.SetFilter(context.Background(), history.Filter{From: ptr(day(2024, 3, 20, 0)), To: ptr(day(2024, 3, 22, 0))})

	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, ids(items))
	assert.Equal(t, [2]string{"2024-03-20", "2024-03-22"}, src.calls[0])
}

func TestView_SinFiltroEnviaFechasVacias(t *testing.T) {
	src := &fakeMovements{items: sampleMovements()}
	v := history.NewMovementsView(src, &alerts{}, nil)

	items, err := v.Refresh(context.Background())

	require.NoError(t, err)
	assert.Len(t, items, 4)
	assert.Equal(t, [2]string{"", ""}, src.calls[0])
}

func TestView_NombreSinDistinguirMayusculas(t *testing.T) {
	src := &fakeMovements{items: sampleMovements()}
	v := history.NewMovementsView(src, &alerts{}, nil)

	items, err := v.SetFilter(context.Background(), history.Filter{Name: "IPAD"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(items))

	items, err = v.SetFilter(context.Background(), history.Filter{Name: "carvajal"})
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, ids(items))
}

func TestView_CadaCambioEsUnaConsultaNueva(t *testing.T) {
	src := &fakeMovements{items: sampleMovements()}
	v := history.NewMovementsView(src, &alerts{}, nil)

	_, _ = v.SetFilter(context.Background(), history.Filter{Name: "a"})
	_, _ = v.SetFilter(context.Background(), history.Filter{Name: "b"})

	assert.Len(t, src.calls, 2)
}

// ── Fallas ───────────────────────────────────────────────────────────────────

func TestView_FallaVaciaLaListaYAlerta(t *testing.T) {
	src := &fakeMovements{items: sampleMovements()}
	al := &alerts{}
	v := history.NewMovementsView(src, al, nil)
	_, err := v.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, v.Items(), 4)

	src.err = &domain.APIError{Status: http.StatusInternalServerError, Msg: "Error interno"}
	_, err = v.Refresh(context.Background())

	require.Error(t, err)
	assert.Empty(t, v.Items())
	assert.Equal(t, []string{"Error interno"}, al.msgs)
	assert.Equal(t, err, v.Err())
}

func TestView_403MuestraAccesoDenegado(t *testing.T) {
	src := &fakeMovements{err: &domain.APIError{Status: http.StatusForbidden, Msg: "Forbidden", Kind: domain.ErrForbidden}}
	al := &alerts{}
	v := history.NewMovementsView(src, al, nil)

	_, err := v.Refresh(context.Background())

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, []string{domain.MsgForbidden}, al.msgs)
}

// ── Consultas reemplazadas ───────────────────────────────────────────────────

func TestView_RespuestaViejaSeDescarta(t *testing.T) {
	slowStarted := make(chan struct{})
	var once sync.Once
	src := history.Source[string]{
		Name: "prueba",
		Fetch: func(ctx context.Context, f history.Filter) ([]string, error) {
			if f.Name == "lenta" {
				once.Do(func() { close(slowStarted) })
				<-ctx.Done()
				return []string{"vieja"}, nil
			}
			return []string{"nueva"}, nil
		},
		Names: func(s string) []string { return nil },
	}
	v := history.NewView(src, ports.NotifierFunc(func(string, string) {}), nil)

	done := make(chan error, 1)
	go func() {
		_, err := v.SetFilter(context.Background(), history.Filter{Name: "lenta"})
		done <- err
	}()
	<-slowStarted

	items, err := v.SetFilter(context.Background(), history.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"nueva"}, items)

	assert.ErrorIs(t, <-done, history.ErrSuperseded)
	assert.Equal(t, []string{"nueva"}, v.Items())
}

// ── Detalle y reportes ───────────────────────────────────────────────────────

func TestMovementDetail_ListasEnLineasYPrimerResponsable(t *testing.T) {
	m := entity.Movement{
		ID:          "m1",
		Products:    []entity.MovementItem{{Barcode: "P1", Name: "iPhone"}, {Barcode: "P2", Name: "iPad"}},
		Accessories: []entity.MovementItem{{Barcode: "A1"}},
		Responsible: []string{"Miguel", "Ana"},
	}
	fields := history.MovementDetail(m)

	values := map[string]string{}
	for _, f := range fields {
		values[f.Label] = f.Value
	}
	assert.Equal(t, "iPhone\niPad", values["Productos"])
	assert.Equal(t, "A1", values["Accesorios"])
	assert.Equal(t, "Miguel", values["Responsable"])
	assert.Equal(t, "ID", fields[0].Label)
}

func TestSaleDetail_TotalEnPesos(t *testing.T) {
	fields := history.SaleDetail(entity.Sale{
		ID:     "s1",
		Seller: "Andrés Ríos",
		Items:  []entity.MovementItem{{Barcode: "P1", Name: "iPhone 15"}, {Barcode: "A1"}},
		Total:  decimal.RequireFromString("4620000"),
	})

	values := map[string]string{}
	for _, f := range fields {
		values[f.Label] = f.Value
	}
	assert.Equal(t, "$4.620.000", values["Total"])
	assert.Equal(t, "iPhone 15\nA1", values["Artículos"])
	assert.Equal(t, "Andrés Ríos", values["Vendedor"])
}

func TestProductsReport_AgrupaUnidades(t *testing.T) {
	items := []entity.Product{
		{Barcode: "1", Name: "iPhone 15", ModelCode: "A1", Capacity: "128GB", Price: decimal.NewFromInt(10)},
		{Barcode: "2", Name: "iPhone 15", ModelCode: "A1", Capacity: "128GB"},
		{Barcode: "3", Name: "AirPods", ModelCode: "B2"},
	}
	r := history.ProductsReport(items, history.Filter{})

	require.Len(t, r.Rows, 2)
	assert.Equal(t, "AirPods", r.Rows[0].Cells[2])
	assert.Equal(t, "2", r.Rows[1].Cells[5])
	assert.Equal(t, []string{"1", "2"}, r.Rows[1].Barcodes)
	assert.Equal(t, "Todas las fechas", r.Subtitle)
}

func TestMovementsReport_SubtituloConRango(t *testing.T) {
	r := history.MovementsReport(sampleMovements(), history.Filter{From: ptr(day(2024, 3, 20, 0)), To: ptr(day(2024, 3, 22, 0))})
	assert.Equal(t, "Desde 20/03/2024 hasta 22/03/2024", r.Subtitle)
	assert.Len(t, r.Rows, 4)
	assert.Equal(t, []string{"P1"}, r.Rows[0].Barcodes)
}
