package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa Gateway.
var _ ports.Gateway = (*Client)(nil)

const maxBodyBytes = 4 << 20

// Client cliente HTTP del backend de inventario. Lee el token del almacenamiento
// en cada petición y normaliza toda falla a *domain.APIError.
type Client struct {
	baseURL    string
	timeout    time.Duration
	store      ports.KeyValueStore
	httpClient *http.Client
	log        *logger.Logger
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el http.Client (tests, transportes propios).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New construye el cliente. timeout se aplica a cada petición completa.
func New(baseURL string, timeout time.Duration, store ports.KeyValueStore, log *logger.Logger, opts ...Option) *Client {
	if log == nil {
		log = logger.Nop()
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		store:      store,
		httpClient: &http.Client{},
		log:        log.Named("gateway"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Do ejecuta una petición JSON. Una cancelación del llamador se devuelve tal cual
// (context.Canceled); cualquier otra falla llega como *domain.APIError.
func (c *Client) Do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: serializar cuerpo: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, target, reader)
	if err != nil {
		return fmt.Errorf("gateway: crear request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	if c.store != nil {
		token, ok, err := c.store.Get(ctx, ports.KeyToken)
		if err != nil {
			return fmt.Errorf("gateway: leer token: %w", err)
		}
		if ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(ctx, reqCtx, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return c.transportError(ctx, reqCtx, method, path, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("elapsed", time.Since(start)).
		Msg("llamada al backend")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := dto.ErrorMessage(raw)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &domain.APIError{Status: resp.StatusCode, Msg: msg, Kind: domain.KindFromStatus(resp.StatusCode)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("gateway: respuesta inválida de %s: %w", path, err)
	}
	return nil
}

// transportError clasifica una falla sin respuesta del servidor.
func (c *Client) transportError(parent, reqCtx context.Context, method, path string, err error) error {
	if errors.Is(parent.Err(), context.Canceled) {
		return parent.Err()
	}
	var netErr net.Error
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		c.log.Warn().Str("method", method).Str("path", path).Dur("timeout", c.timeout).Msg("tiempo de espera agotado")
		return &domain.APIError{Msg: domain.MsgTimeout, Kind: domain.ErrTimeout}
	}
	c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("servidor inaccesible")
	return &domain.APIError{Msg: domain.MsgUnreachable, Kind: domain.ErrUnreachable}
}
