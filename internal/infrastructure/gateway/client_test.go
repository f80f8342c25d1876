package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/infrastructure/gateway"
	"github.com/jhoicas/bodega-app/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, h http.HandlerFunc, timeout time.Duration) (*gateway.Client, *storage.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	store := storage.NewMemoryStore()
	return gateway.New(srv.URL, timeout, store, nil), store
}

// ── Token ────────────────────────────────────────────────────────────────────

func TestClient_AdjuntaBearerCuandoHayToken(t *testing.T) {
	var auth, reqID string
	c, store := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		reqID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}, time.Second)
	require.NoError(t, store.Set(context.Background(), ports.KeyToken, "fake-token"))

	var out map[string]bool
	require.NoError(t, c.Get(context.Background(), "/gt/perfil", nil, &out))

	assert.Equal(t, "Bearer fake-token", auth)
	assert.NotEmpty(t, reqID)
	assert.True(t, out["ok"])
}

func TestClient_SinTokenNoEnviaAuthorization(t *testing.T) {
	var auth string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
	}, time.Second)

	require.NoError(t, c.Post(context.Background(), "gt/login", map[string]string{"email": "x"}, nil))
	assert.Empty(t, auth)
}

func TestClient_ParametrosYCuerpo(t *testing.T) {
	var gotQuery url.Values
	var gotBody map[string]string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
	}, time.Second)

	require.NoError(t, c.Get(context.Background(), "/gt/movimientosBodeguero", url.Values{"desde": {""}, "hasta": {"2024-03-20"}}, nil))
	assert.Equal(t, "2024-03-20", gotQuery.Get("hasta"))
	assert.Contains(t, gotQuery, "desde")

	require.NoError(t, c.Put(context.Background(), "/gt/actualizarMovimiento/1", map[string]string{"observacion": "ok"}, nil))
	assert.Equal(t, "ok", gotBody["observacion"])
}

// ── Normalización de errores ─────────────────────────────────────────────────

func TestClient_ErrorDelServidorConMsg(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"msg":"Credenciales inválidas"}`))
	}, time.Second)

	err := c.Post(context.Background(), "/gt/login", nil, nil)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Credenciales inválidas", apiErr.Msg)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClient_403EsForbidden(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}, time.Second)

	err := c.Get(context.Background(), "/gt/ventas", nil, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, domain.MsgForbidden, domain.UserMessage(err, ""))
}

func TestClient_TimeoutDevuelveMensajeFijo(t *testing.T) {
	release := make(chan struct{})
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 50*time.Millisecond)
	defer close(release)

	err := c.Get(context.Background(), "/gt/listarProductos", nil, nil)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, domain.MsgTimeout, apiErr.Msg)
	assert.ErrorIs(t, err, domain.ErrTimeout)
}

func TestClient_SinServidorDevuelveInaccesible(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c := gateway.New("http://"+addr, time.Second, storage.NewMemoryStore(), nil)
	err = c.Get(context.Background(), "/gt/perfil", nil, nil)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, domain.MsgUnreachable, apiErr.Msg)
	assert.ErrorIs(t, err, domain.ErrUnreachable)
}

func TestClient_CancelacionDelLlamadorNoSeNormaliza(t *testing.T) {
	started := make(chan struct{})
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	err := c.Get(ctx, "/gt/movimientosBodeguero", nil, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_HTTPClientPropio(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["Bodega"]`))
	}))
	t.Cleanup(srv.Close)
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return http.DefaultTransport.RoundTrip(r)
	})}

	c := gateway.New(srv.URL, time.Second, storage.NewMemoryStore(), nil, gateway.WithHTTPClient(hc))
	var out []string
	require.NoError(t, c.Get(context.Background(), "/gt/areasunicas", nil, &out))

	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"Bodega"}, out)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
