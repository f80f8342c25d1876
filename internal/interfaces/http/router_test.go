package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-app/internal/application/auth"
	"github.com/jhoicas/bodega-app/internal/application/inventory"
	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/application/service"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/infrastructure/gateway"
	"github.com/jhoicas/bodega-app/internal/infrastructure/memory"
	"github.com/jhoicas/bodega-app/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/bodega-app/internal/interfaces/http"
	"github.com/jhoicas/bodega-app/internal/sandbox"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newSandbox(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, memory.Seed(store, memory.DefaultSeedOptions(7)))
	app := sandbox.New(store, sandbox.Options{
		Name: "bodega-test",
		JWT:  auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
	}, nil)
	return app, store
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/gt/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, status, string(body))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func msgOf(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		Msg string `json:"msg"`
	}
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out.Msg
}

func availableProducts(t *testing.T, store *memory.Store, n int) []*entity.Product {
	t.Helper()
	all, err := memory.NewProductRepository(store).List(memory.ItemFilterAll)
	require.NoError(t, err)
	var out []*entity.Product
	for _, p := range all {
		if p.Status == entity.StatusAvailable && p.Location != "Taller" {
			out = append(out, p)
		}
		if len(out) == n {
			break
		}
	}
	require.Len(t, out, n)
	return out
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func TestLogin_MiguelRecibeTokenYDatos(t *testing.T) {
	app, _ := newSandbox(t)
	status, body := call(t, app, http.MethodPost, "/gt/login", "", map[string]string{
		"email": memory.FixtureEmail, "password": memory.FixturePassword,
	})
	require.Equal(t, http.StatusOK, status)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotEmpty(t, out["token"])
	assert.Equal(t, memory.FixtureUserID, out["_id"])
	assert.Equal(t, "Miguel", out["nombre"])
	assert.Equal(t, "bodeguero", out["rol"])
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	app, _ := newSandbox(t)
	status, body := call(t, app, http.MethodPost, "/gt/login", "", map[string]string{
		"email": memory.FixtureEmail, "password": "mala",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, auth.MsgInvalidCredentials, msgOf(t, body))
}

func TestLogin_CuerpoIncompleto(t *testing.T) {
	app, _ := newSandbox(t)
	status, _ := call(t, app, http.MethodPost, "/gt/login", "", map[string]string{"email": "no-es-correo"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPerfil_SinTokenEs401(t *testing.T) {
	app, _ := newSandbox(t)
	status, body := call(t, app, http.MethodGet, "/gt/perfil", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apphttp.MsgMissingToken, msgOf(t, body))
}

func TestPerfil_DevuelveUsuario(t *testing.T) {
	app, _ := newSandbox(t)
	token := login(t, app, memory.FixtureEmail, memory.FixturePassword)

	status, body := call(t, app, http.MethodGet, "/gt/perfil", token, nil)
	require.Equal(t, http.StatusOK, status)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, memory.FixtureLastName, out["apellido"])
	assert.Equal(t, memory.FixtureEmail, out["email"])
}

// ── Movimientos ──────────────────────────────────────────────────────────────

func TestRegistrarMovimiento_MueveArticulos(t *testing.T) {
	app, store := newSandbox(t)
	token := login(t, app, memory.FixtureEmail, memory.FixturePassword)
	items := availableProducts(t, store, 2)

	status, body := call(t, app, http.MethodPost, "/gt/registrarMovimiento", token, map[string]any{
		"productos":   []map[string]string{{"codigoBarras": items[0].Barcode}, {"codigoBarras": items[1].Barcode}},
		"accesorios":  []map[string]string{},
		"areaLlegada": "Taller",
		"observacion": "Revisión",
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	var out struct {
		Msg        string `json:"msg"`
		Movimiento struct {
			ID          string `json:"_id"`
			AreaLlegada string `json:"areaLlegada"`
			Responsable string `json:"responsable"`
			Productos   []any  `json:"productos"`
			Accesorios  []any  `json:"accesorios"`
		} `json:"movimiento"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, inventory.MsgRegistered, out.Msg)
	assert.Equal(t, "Taller", out.Movimiento.AreaLlegada)
	assert.Equal(t, "Miguel Carvajal", out.Movimiento.Responsable)
	assert.Len(t, out.Movimiento.Productos, 2)

	status, body = call(t, app, http.MethodGet, "/gt/listarProducto/"+items[0].Barcode, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"locacion":"Taller"`)

	status, body = call(t, app, http.MethodGet, "/gt/listarMovimiento/"+out.Movimiento.ID, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "Revisión")
}

func TestRegistrarMovimiento_CodigoDesconocidoNoMueveNada(t *testing.T) {
	app, store := newSandbox(t)
	token := login(t, app, memory.FixtureEmail, memory.FixturePassword)
	item := availableProducts(t, store, 1)[0]

	status, body := call(t, app, http.MethodPost, "/gt/registrarMovimiento", token, map[string]any{
		"productos":   []map[string]string{{"codigoBarras": item.Barcode}, {"codigoBarras": "0000000000000"}},
		"areaLlegada": "Taller",
		"observacion": "x",
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, msgOf(t, body), "0000000000000")

	after, err := memory.NewProductRepository(store).GetByBarcode(item.Barcode)
	require.NoError(t, err)
	assert.Equal(t, item.Location, after.Location)
}

func TestRegistrarMovimiento_VendedorNoPuede(t *testing.T) {
	app, _ := newSandbox(t)
	token := login(t, app, "vendedor@correo.com", "1234")

	status, body := call(t, app, http.MethodPost, "/gt/registrarMovimiento", token, map[string]any{"areaLlegada": "Taller"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, domain.MsgForbidden, msgOf(t, body))
}

func TestActualizarMovimiento_Observacion(t *testing.T) {
	app, store := newSandbox(t)
	token := login(t, app, memory.FixtureEmail, memory.FixturePassword)

	list, err := memory.NewMovementRepository(store).ListByResponsible("Miguel Carvajal", memory.ItemFilterAll)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	id := list[0].ID

	status, body := call(t, app, http.MethodPut, "/gt/actualizarMovimiento/"+id, token, map[string]string{"observacion": "Nueva nota"})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, inventory.MsgNoteUpdated, msgOf(t, body))

	got, err := memory.NewMovementRepository(store).GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Nueva nota", got.Note)
}

func TestListarMovimiento_IDInvalido(t *testing.T) {
	app, _ := newSandbox(t)
	token := login(t, app, memory.FixtureEmail, memory.FixturePassword)

	status, _ := call(t, app, http.MethodGet, "/gt/listarMovimiento/no-es-objectid", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodGet, "/gt/listarMovimiento/65fa8a800000000000000000", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMovimientosBodeguero_FechaInvalida(t *testing.T) {
	app, _ := newSandbox(t)
	token := login(t, app, memory.FixtureEmail, memory.FixturePassword)

	status, body := call(t, app, http.MethodGet, "/gt/movimientosBodeguero", token, nil)
	require.Equal(t, http.StatusOK, status)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
	assert.NotEmpty(t, list)

	status, _ = call(t, app, http.MethodGet, "/gt/movimientosBodeguero?desde=ayer", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

// ── Catálogo, stock y ventas ─────────────────────────────────────────────────

func TestAreasYCategorias(t *testing.T) {
	app, _ := newSandbox(t)
	token := login(t, app, memory.FixtureEmail, memory.FixturePassword)

	status, body := call(t, app, http.MethodGet, "/gt/areasunicas", token, nil)
	require.Equal(t, http.StatusOK, status)
	var areas []string
	require.NoError(t, json.Unmarshal(body, &areas))
	assert.Subset(t, areas, memory.Areas)

	status, body = call(t, app, http.MethodGet, "/gt/listarCategorias", token, nil)
	require.Equal(t, http.StatusOK, status)
	var cats []struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(body, &cats))
	require.NotEmpty(t, cats)

	status, body = call(t, app, http.MethodGet, "/gt/listarCategoria/"+cats[0].ID, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"categoria"`)

	status, _ = call(t, app, http.MethodGet, "/gt/listarCategoria/nada", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStockDisponible_Agrupado(t *testing.T) {
	app, _ := newSandbox(t)
	token := login(t, app, memory.FixtureEmail, memory.FixturePassword)

	status, body := call(t, app, http.MethodGet, "/gt/stockDisponible", token, nil)
	require.Equal(t, http.StatusOK, status)
	var out struct {
		Productos  []map[string]any `json:"productos"`
		Accesorios []map[string]any `json:"accesorios"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotEmpty(t, out.Productos)
}

func TestVentas_PorRol(t *testing.T) {
	app, _ := newSandbox(t)

	bodeguero := login(t, app, memory.FixtureEmail, memory.FixturePassword)
	status, _ := call(t, app, http.MethodGet, "/gt/ventas", bodeguero, nil)
	assert.Equal(t, http.StatusForbidden, status)

	vendedor := login(t, app, "vendedor@correo.com", "1234")
	status, body := call(t, app, http.MethodGet, "/gt/ventas", vendedor, nil)
	require.Equal(t, http.StatusOK, status)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
}

func TestRutaInexistente_RespondeMsg(t *testing.T) {
	app, _ := newSandbox(t)
	status, body := call(t, app, http.MethodGet, "/gt/noExiste", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, msgOf(t, body))

	token := login(t, app, memory.FixtureEmail, memory.FixturePassword)
	status, _ = call(t, app, http.MethodGet, "/gt/noExiste", token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Una ruta existente sigue pidiendo token.
	status, _ = call(t, app, http.MethodGet, "/gt/listarProductos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

// ── Cliente contra el sandbox ────────────────────────────────────────────────

func TestCliente_LoginMiguelContraSandbox(t *testing.T) {
	app, _ := newSandbox(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	kv := storage.NewMemoryStore()
	gw := gateway.New("http://"+ln.Addr().String(), 5*time.Second, kv, nil)
	authSvc := service.NewAuthService(gw, kv, nil)
	ctx := context.Background()

	res, err := authSvc.Login(ctx, memory.FixtureEmail, memory.FixturePassword)
	require.NoError(t, err)
	assert.Equal(t, memory.FixtureUserID, res.User.ID)
	assert.Equal(t, "Miguel", res.User.FirstName)

	token, ok, err := kv.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, res.Token, token)

	profile, err := authSvc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, memory.FixtureEmail, profile.Email)

	_, err = authSvc.Login(ctx, memory.FixtureEmail, "mala")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
