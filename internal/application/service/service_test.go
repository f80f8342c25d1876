package service_test

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"testing"

	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/application/service"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	method string
	path   string
	params url.Values
	body   any
}

// fakeGateway responde con JSON fijo por "MÉTODO ruta" y registra las llamadas.
type fakeGateway struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     []call
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{responses: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeGateway) do(method, path string, params url.Values, body, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{method: method, path: path, params: params, body: body})
	key := method + " " + path
	if err := f.errs[key]; err != nil {
		return err
	}
	if raw, ok := f.responses[key]; ok && out != nil {
		return json.Unmarshal([]byte(raw), out)
	}
	return nil
}

func (f *fakeGateway) Get(_ context.Context, path string, params url.Values, out any) error {
	return f.do("GET", path, params, nil, out)
}

func (f *fakeGateway) Post(_ context.Context, path string, body, out any) error {
	return f.do("POST", path, nil, body, out)
}

func (f *fakeGateway) Put(_ context.Context, path string, body, out any) error {
	return f.do("PUT", path, nil, body, out)
}

func (f *fakeGateway) lastCall() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

const miguelLogin = `{"token":"fake-token","nombre":"Miguel","apellido":"Carvajal","_id":"123","rol":"bodeguero","email":"miguel@correo.com"}`

// ── Auth ─────────────────────────────────────────────────────────────────────

func TestAuthService_LoginPersisteTokenYUsuario(t *testing.T) {
	gw := newFakeGateway()
	gw.responses["POST /gt/login"] = miguelLogin
	store := storage.NewMemoryStore()
	svc := service.NewAuthService(gw, store, nil)

	res, err := svc.Login(context.Background(), "miguel@correo.com", "1234")
	require.NoError(t, err)

	assert.Equal(t, "fake-token", res.Token)
	assert.Equal(t, entity.User{ID: "123", FirstName: "Miguel", LastName: "Carvajal", Role: "bodeguero", Email: "miguel@correo.com"}, res.User)

	token, ok, _ := store.Get(context.Background(), ports.KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "fake-token", token)
	raw, ok, _ := store.Get(context.Background(), ports.KeyUser)
	assert.True(t, ok)
	assert.JSONEq(t, `{"_id":"123","nombre":"Miguel","apellido":"Carvajal","rol":"bodeguero","email":"miguel@correo.com"}`, raw)
}

func TestAuthService_LoginInvalidoNoPersisteNada(t *testing.T) {
	gw := newFakeGateway()
	gw.errs["POST /gt/login"] = &domain.APIError{Status: 400, Msg: "Credenciales inválidas", Kind: domain.ErrInvalidInput}
	store := storage.NewMemoryStore()
	svc := service.NewAuthService(gw, store, nil)

	_, err := svc.Login(context.Background(), "miguel@correo.com", "mala")
	require.Error(t, err)
	assert.Equal(t, "Credenciales inválidas", err.Error())

	_, ok, _ := store.Get(context.Background(), ports.KeyToken)
	assert.False(t, ok)
	_, ok, _ = store.Get(context.Background(), ports.KeyUser)
	assert.False(t, ok)
}

func TestAuthService_LoginSinTokenEnRespuesta(t *testing.T) {
	gw := newFakeGateway()
	gw.responses["POST /gt/login"] = `{"nombre":"Miguel"}`
	store := storage.NewMemoryStore()

	_, err := service.NewAuthService(gw, store, nil).Login(context.Background(), "a@b.c", "x")

	require.Error(t, err)
	assert.Equal(t, service.MsgTokenMissing, err.Error())
	_, ok, _ := store.Get(context.Background(), ports.KeyUser)
	assert.False(t, ok)
}

func TestAuthService_PerfilSinToken(t *testing.T) {
	gw := newFakeGateway()
	_, err := service.NewAuthService(gw, storage.NewMemoryStore(), nil).Profile(context.Background())

	require.ErrorIs(t, err, domain.ErrNoToken)
	assert.Equal(t, "No hay token", err.Error())
	assert.Empty(t, gw.calls)
}

func TestAuthService_PerfilConToken(t *testing.T) {
	gw := newFakeGateway()
	gw.responses["GET /gt/perfil"] = `{"nombre":"Miguel","apellido":"Carvajal","rol":"bodeguero","email":"miguel@correo.com"}`
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), ports.KeyToken, "fake-token"))

	u, err := service.NewAuthService(gw, store, nil).Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Miguel Carvajal", u.FullName())
	assert.Equal(t, "bodeguero", u.Role)
}

func TestAuthService_LogoutBorraClaves(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, ports.KeyToken, "fake-token"))
	require.NoError(t, store.Set(ctx, ports.KeyUser, "{}"))

	require.NoError(t, service.NewAuthService(newFakeGateway(), store, nil).Logout(ctx))

	_, ok, _ := store.Get(ctx, ports.KeyToken)
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, ports.KeyUser)
	assert.False(t, ok)
}

func TestAuthService_StoredSession(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := service.NewAuthService(newFakeGateway(), store, nil)

	_, u, err := svc.StoredSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, store.Set(ctx, ports.KeyToken, "fake-token"))
	require.NoError(t, store.Set(ctx, ports.KeyUser, `{"_id":"123","nombre":"Miguel"}`))
	token, u, err := svc.StoredSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fake-token", token)
	assert.Equal(t, "123", u.ID)

	require.NoError(t, store.Set(ctx, ports.KeyUser, `{roto`))
	_, _, err = svc.StoredSession(ctx)
	assert.ErrorIs(t, err, service.ErrCorruptSession)
}

// ── Movimientos ──────────────────────────────────────────────────────────────

func TestMovementService_FindProductByBarcode(t *testing.T) {
	gw := newFakeGateway()
	gw.responses["GET /gt/listarProducto/7701"] = `{"producto":{"codigoBarras":"7701","nombreEquipo":"iPhone 15","capacidad":"128GB","color":"Negro","codigoSerial":"SN1"}}`
	svc := service.NewMovementService(gw)

	line, err := svc.FindProductByBarcode(context.Background(), " 7701 ")
	require.NoError(t, err)
	assert.Equal(t, entity.ScannedProductLine{Barcode: "7701", DisplayName: "iPhone 15", Capacity: "128GB", Color: "Negro", Serial: "SN1"}, *line)
}

func TestMovementService_ProductoSinPayloadEsNoEncontrado(t *testing.T) {
	gw := newFakeGateway()
	gw.responses["GET /gt/listarProducto/999"] = `{"msg":"ok"}`

	_, err := service.NewMovementService(gw).FindProductByBarcode(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementService_FindAccessoryByBarcode(t *testing.T) {
	gw := newFakeGateway()
	gw.responses["GET /gt/listarAccesorio/A1"] = `{"accesorio":{"codigoBarrasAccs":"A1","nombreAccs":"Cable USB-C"}}`

	line, err := service.NewMovementService(gw).FindAccessoryByBarcode(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, "Cable USB-C", line.DisplayName)
}

func TestMovementService_SubmitEnviaSoloCodigos(t *testing.T) {
	gw := newFakeGateway()
	gw.responses["POST /gt/registrarMovimiento"] = `{"msg":"Movimiento registrado"}`
	draft := entity.MovementDraft{
		Products:        []entity.ScannedProductLine{{Barcode: "P1", DisplayName: "iPhone"}},
		Accessories:     []entity.ScannedAccessoryLine{{Barcode: "A1", DisplayName: "Cable"}},
		DestinationArea: "Vitrina",
		Note:            "Reposición",
	}

	m, err := service.NewMovementService(gw).SubmitMovement(context.Background(), draft)
	require.NoError(t, err)
	assert.Nil(t, m)

	body, ok := gw.lastCall().body.(dto.RegisterMovementRequest)
	require.True(t, ok)
	assert.Equal(t, []dto.MovementProductRef{{Barcode: "P1"}}, body.Products)
	assert.Equal(t, []dto.MovementAccessoryRef{{Barcode: "A1"}}, body.Accessories)
	assert.Equal(t, "Vitrina", body.DestinationArea)
}

func TestMovementService_ListMovementsEnviaFechasTalCual(t *testing.T) {
	gw := newFakeGateway()
	gw.responses["GET /gt/movimientosBodeguero"] = `[{"_id":"m1","areaLlegada":"Vitrina","fecha":"2024-03-20"}]`

	list, err := service.NewMovementService(gw).ListMovements(context.Background(), "20/03/2024", "")
	require.NoError(t, err)
	require.Len(t, list, 1)

	params := gw.lastCall().params
	assert.Equal(t, "20/03/2024", params.Get("desde"))
	assert.Contains(t, params, "hasta")
	assert.Equal(t, "", params.Get("hasta"))
}

func TestMovementService_GetMovementIDInvalidoNoLlamaAlBackend(t *testing.T) {
	gw := newFakeGateway()
	_, err := service.NewMovementService(gw).GetMovement(context.Background(), "no-es-objectid")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, gw.calls)
}

func TestMovementService_UpdateMovementNote(t *testing.T) {
	gw := newFakeGateway()
	require.NoError(t, service.NewMovementService(gw).UpdateMovementNote(context.Background(), "65fa8a800000000000000000", "Nueva nota"))

	c := gw.lastCall()
	assert.Equal(t, "PUT", c.method)
	assert.Equal(t, "/gt/actualizarMovimiento/65fa8a800000000000000000", c.path)
	assert.Equal(t, dto.UpdateNoteRequest{Note: "Nueva nota"}, c.body)
}

func TestMovementService_ListAreasPropagaError(t *testing.T) {
	gw := newFakeGateway()
	gw.errs["GET /gt/areasunicas"] = &domain.APIError{Status: 500, Msg: "Internal Server Error"}

	_, err := service.NewMovementService(gw).ListAreas(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Internal Server Error", domain.UserMessage(err, service.MsgAreasError))
}

// ── Stock y ventas ───────────────────────────────────────────────────────────

func TestStockService_SoloFiltrosConValor(t *testing.T) {
	gw := newFakeGateway()
	gw.responses["GET /gt/stockDisponible"] = `{"productos":[{"nombreEquipo":"iPhone","cantidad":0,"codigoB":["1","2"]}],"accesorios":[]}`

	s, err := service.NewStockService(gw).Available(context.Background(), entity.StockFilter{Name: "iPhone"})
	require.NoError(t, err)
	require.Len(t, s.Products, 1)
	assert.Equal(t, 2, s.Products[0].Quantity)

	assert.Equal(t, url.Values{"nombre": {"iPhone"}}, gw.lastCall().params)
}

func TestSaleService_FechasOpcionales(t *testing.T) {
	gw := newFakeGateway()
	gw.responses["GET /gt/ventas"] = `{"ventas":[{"_id":"v1","total":"1500","vendedor":{"nombre":"Ana"}}]}`

	sales, err := service.NewSaleService(gw).ListByDates(context.Background(), "", "2024-03-20")
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "Ana", sales[0].Seller)
	assert.Equal(t, url.Values{"hasta": {"2024-03-20"}}, gw.lastCall().params)
}

func TestProductService_CreateMarcaDisponible(t *testing.T) {
	gw := newFakeGateway()
	gw.responses["POST /gt/agregarProducto"] = `{"producto":{"codigoBarras":"7701000000017","nombreEquipo":"iPhone 15"}}`

	p, err := service.NewProductService(gw).Create(context.Background(), dto.CreateProductRequest{Name: "iPhone 15"})
	require.NoError(t, err)
	assert.Equal(t, "7701000000017", p.Barcode)

	body := gw.lastCall().body.(dto.CreateProductRequest)
	assert.Equal(t, entity.StatusAvailable, body.Status)
}

// ── Catálogo y reportes ──────────────────────────────────────────────────────

func TestReportService_FechasSiempreEnviadas(t *testing.T) {
	gw := newFakeGateway()
	gw.responses["GET /gt/productosBodeguero"] = `{"productos":[{"codigoBarras":"P1","nombreEquipo":"iPhone 15","precio":"4500000"}]}`
	gw.responses["GET /gt/accesoriosBodeguero"] = `[{"codigoBarrasAccs":"A1","nombreAccs":"Cable","precioAccs":120000}]`
	reports := service.NewReportService(gw)

	products, err := reports.ProductsByDate(context.Background(), "2024-03-01", "")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "iPhone 15", products[0].Name)
	assert.Equal(t, url.Values{"desde": {"2024-03-01"}, "hasta": {""}}, gw.lastCall().params)

	accessories, err := reports.AccessoriesByDate(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, accessories, 1)
	assert.Equal(t, "A1", accessories[0].Barcode)
}

func TestCategoryService_GetEnvueltaYNoEncontrada(t *testing.T) {
	gw := newFakeGateway()
	gw.responses["GET /gt/listarCategoria/c1"] = `{"categoria":{"_id":"c1","nombreCategoria":" iPhone "}}`
	gw.responses["GET /gt/listarCategoria/c2"] = `{}`
	categories := service.NewCategoryService(gw)

	c, err := categories.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "iPhone", c.Name)

	_, err = categories.Get(context.Background(), "c2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductService_ListYUpdate(t *testing.T) {
	gw := newFakeGateway()
	gw.responses["GET /gt/listarProductos"] = `{"productos":[{"codigoBarras":"P1"},{"codigoBarras":"P2"}]}`
	products := service.NewProductService(gw)

	list, err := products.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)

	location := "Vitrina"
	require.NoError(t, products.Update(context.Background(), "P1", dto.UpdateProductRequest{Location: &location}))
	last := gw.lastCall()
	assert.Equal(t, "PUT", last.method)
	assert.Equal(t, "/gt/actualizarProducto/P1", last.path)
}

func TestAccessoryService_UpdateSinCodigoNoLlama(t *testing.T) {
	gw := newFakeGateway()
	err := service.NewAccessoryService(gw).Update(context.Background(), "  ", dto.UpdateAccessoryRequest{})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, gw.calls)
}
