package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/bodega-app/internal/application/export"
	"github.com/jhoicas/bodega-app/internal/infrastructure/barcode"
	"github.com/jhoicas/bodega-app/internal/infrastructure/pdf"
	"github.com/jhoicas/bodega-app/internal/infrastructure/share"
)

// Motores y destinos soportados.
const (
	EngineMaroto   = "maroto"
	EngineChromedp = "chromedp"
	ShareDir       = "dir"
	ShareS3        = "s3"
)

// exporterFor arma el exportador desde la configuración la primera vez que se pide.
func (a *App) exporterFor(ctx context.Context) (Exporter, error) {
	if a.exporter != nil {
		return a.exporter, nil
	}
	cfg := a.cfg.Export

	var renderer export.Renderer
	switch cfg.Engine {
	case EngineChromedp:
		chrome := pdf.NewChromeRenderer(pdf.ChromeConfig{
			RemoteURL: cfg.ChromeRemoteURL,
			NoSandbox: cfg.ChromeNoSandbox,
		}, a.log)
		a.closers = append(a.closers, chrome)
		renderer = chrome
	case EngineMaroto, "":
		renderer = pdf.NewMarotoRenderer(a.cfg.App.Name)
	default:
		return nil, fmt.Errorf("cli: motor de PDF desconocido %q", cfg.Engine)
	}

	var sharer export.Sharer
	switch cfg.ShareTarget {
	case ShareS3:
		s3, err := share.NewS3Sharer(ctx, a.cfg.S3, a.log)
		if err != nil {
			return nil, err
		}
		sharer = s3
	case ShareDir, "":
		sharer = share.NewDirSharer(cfg.Dir, a.log)
	default:
		return nil, fmt.Errorf("cli: destino desconocido %q", cfg.ShareTarget)
	}

	a.exporter = export.NewExporter(renderer, sharer, barcode.New(cfg.BarcodeServiceURL, a.cfg.API.Timeout, a.log), a.log)
	return a.exporter, nil
}

// Close libera el navegador del exportador, si se abrió.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

var _ io.Closer = (*pdf.ChromeRenderer)(nil)
