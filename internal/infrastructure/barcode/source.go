// Package barcode obtiene imágenes PNG de códigos de barras para la exportación.
package barcode

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jhoicas/bodega-app/internal/application/export"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

const maxImageBytes = 1 << 20

// RemoteSource servicio HTTP que dibuja el código: GET ?bcid=code128&text=<código>&scale=2&includetext.
type RemoteSource struct {
	baseURL string
	client  *http.Client
}

func NewRemoteSource(baseURL string, timeout time.Duration) *RemoteSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteSource{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

func (s *RemoteSource) Image(ctx context.Context, code string) ([]byte, error) {
	// includetext va sin valor, como lo espera el servicio.
	q := url.Values{"bcid": {"code128"}, "text": {code}, "scale": {"2"}}
	target := s.baseURL + "?" + q.Encode() + "&includetext"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("barcode: armar solicitud: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("barcode: servicio: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("barcode: servicio respondió %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("barcode: leer imagen: %w", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		return nil, fmt.Errorf("barcode: la respuesta no es PNG")
	}
	return data, nil
}

// LocalSource genera Code 128 en el proceso.
type LocalSource struct {
	Width  int
	Height int
}

func NewLocalSource() *LocalSource {
	return &LocalSource{Width: 300, Height: 80}
}

func (s *LocalSource) Image(_ context.Context, code string) ([]byte, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("barcode: código vacío")
	}
	bc, err := code128.Encode(code)
	if err != nil {
		return nil, fmt.Errorf("barcode: codificar %q: %w", code, err)
	}
	scaled, err := barcode.Scale(bc, s.Width, s.Height)
	if err != nil {
		return nil, fmt.Errorf("barcode: escalar: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("barcode: png: %w", err)
	}
	return buf.Bytes(), nil
}

// FallbackSource intenta primary y, si falla, fallback.
type FallbackSource struct {
	primary  export.BarcodeSource
	fallback export.BarcodeSource
	log      *logger.Logger
}

func NewFallbackSource(primary, fallback export.BarcodeSource, log *logger.Logger) *FallbackSource {
	if log == nil {
		log = logger.Nop()
	}
	return &FallbackSource{primary: primary, fallback: fallback, log: log.Named("barcode")}
}

func (s *FallbackSource) Image(ctx context.Context, code string) ([]byte, error) {
	img, err := s.primary.Image(ctx, code)
	if err == nil {
		return img, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	s.log.Debug().Err(err).Str("barcode", code).Msg("servicio de códigos no disponible, generando local")
	return s.fallback.Image(ctx, code)
}

// New fuente según configuración: servicio remoto con respaldo local, o solo local.
func New(serviceURL string, timeout time.Duration, log *logger.Logger) export.BarcodeSource {
	if strings.TrimSpace(serviceURL) == "" {
		return NewLocalSource()
	}
	return NewFallbackSource(NewRemoteSource(serviceURL, timeout), NewLocalSource(), log)
}
