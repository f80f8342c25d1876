package export

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

// MsgEmptyReport se devuelve al exportar una vista sin filas.
const MsgEmptyReport = "No hay datos para exportar"

// MsgExportError mensaje genérico de falla de exportación.
const MsgExportError = "Error al generar el PDF"

// BarcodeSource devuelve la imagen PNG de un código de barras.
type BarcodeSource interface {
	Image(ctx context.Context, code string) ([]byte, error)
}

// Renderer convierte el documento en bytes PDF.
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}

// Sharer entrega el archivo generado y devuelve su ubicación (ruta o URL).
type Sharer interface {
	Share(ctx context.Context, fileName string, data []byte) (string, error)
}

// Options opciones de una exportación.
type Options struct {
	FileName     string
	WithBarcodes bool
}

// Exporter orquesta imágenes de códigos, renderizado y entrega.
type Exporter struct {
	barcodes BarcodeSource
	renderer Renderer
	sharer   Sharer
	log      *logger.Logger
	workers  int
	now      func() time.Time
}

// NewExporter barcodes puede ser nil; en ese caso los códigos salen como texto.
func NewExporter(renderer Renderer, sharer Sharer, barcodes BarcodeSource, log *logger.Logger) *Exporter {
	if log == nil {
		log = logger.Nop()
	}
	return &Exporter{
		barcodes: barcodes,
		renderer: renderer,
		sharer:   sharer,
		log:      log.Named("export"),
		workers:  4,
		now:      time.Now,
	}
}

// Export genera el PDF del reporte y lo entrega. Devuelve la ubicación del archivo.
func (e *Exporter) Export(ctx context.Context, report Report, opts Options) (string, error) {
	if report.Empty() {
		return "", domain.NewValidationError("reporte", MsgEmptyReport)
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = e.now()
	}

	doc := Document{Report: report}
	if opts.WithBarcodes && e.barcodes != nil {
		doc.Images = e.fetchImages(ctx, report.Barcodes())
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := e.renderer.Render(ctx, doc)
	if err != nil {
		e.log.Error().Err(err).Str("title", report.Title).Msg("no se pudo renderizar el PDF")
		return "", fmt.Errorf("export: renderizar: %w", err)
	}

	name := FileName(opts.FileName, report.Title, report.GeneratedAt)
	location, err := e.sharer.Share(ctx, name, data)
	if err != nil {
		e.log.Error().Err(err).Str("file", name).Msg("no se pudo compartir el PDF")
		return "", fmt.Errorf("export: compartir: %w", err)
	}
	e.log.Info().Str("file", name).Int("rows", len(report.Rows)).Int("bytes", len(data)).Str("location", location).Msg("PDF exportado")
	return location, nil
}

// fetchImages descarga las imágenes con un grupo acotado de workers.
// Las fallas se registran y el código queda como texto.
func (e *Exporter) fetchImages(ctx context.Context, codes []string) map[string][]byte {
	images := make(map[string][]byte, len(codes))
	if len(codes) == 0 {
		return images
	}
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		jobs = make(chan string)
	)
	workers := e.workers
	if workers > len(codes) {
		workers = len(codes)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for code := range jobs {
				img, err := e.barcodes.Image(ctx, code)
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						e.log.Warn().Err(err).Str("barcode", code).Msg("imagen de código no disponible")
					}
					continue
				}
				mu.Lock()
				images[code] = img
				mu.Unlock()
			}
		}()
	}
	for _, c := range codes {
		select {
		case jobs <- c:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()
	return images
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// FileName nombre de archivo seguro terminado en .pdf. Sin nombre explícito usa
// el título y la fecha de generación.
func FileName(name, title string, at time.Time) string {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".pdf")
	if name == "" {
		name = title + "_" + at.Format("20060102_150405")
	}
	name = strings.Trim(unsafeName.ReplaceAllString(name, "_"), "_")
	if name == "" {
		name = "reporte"
	}
	return name + ".pdf"
}
