package pdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jhoicas/bodega-app/internal/application/export"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

const defaultChromeTimeout = 30 * time.Second

// A4 en pulgadas, como las espera Chrome.
const (
	a4Width  = 210 / 25.4
	a4Height = 297 / 25.4
	margin   = 10 / 25.4
)

// ChromeConfig navegador usado para convertir HTML a PDF.
type ChromeConfig struct {
	RemoteURL string // Chrome remoto (ws://...); vacío lanza uno local
	NoSandbox bool   // necesario en contenedores que corren como root
	Timeout   time.Duration
}

// ChromeRenderer convierte el HTML del reporte a PDF con Chrome headless.
type ChromeRenderer struct {
	cfg         ChromeConfig
	log         *logger.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

func NewChromeRenderer(cfg ChromeConfig, log *logger.Logger) *ChromeRenderer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultChromeTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	r := &ChromeRenderer{cfg: cfg, log: log.Named("pdf.chrome")}

	if cfg.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return r
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r
}

func (r *ChromeRenderer) Render(ctx context.Context, doc export.Document) ([]byte, error) {
	html, err := BuildHTML(doc)
	if err != nil {
		return nil, err
	}
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.log.Debug().Msgf(format, args...)
		}),
	)
	defer browserCancel()

	// El contexto del navegador no hereda ctx; se cancela a mano si ctx termina.
	stop := context.AfterFunc(ctx, browserCancel)
	defer stop()

	var data []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(len(doc.Columns) > 5).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				Do(ctx)
			if err != nil {
				return err
			}
			data = out
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("pdf: chrome excedió %v: %w", r.cfg.Timeout, err)
		}
		return nil, fmt.Errorf("pdf: chrome: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("pdf: chrome devolvió un PDF vacío")
	}
	r.log.Debug().Int("bytes", len(data)).Dur("duration", time.Since(start)).Msg("PDF renderizado")
	return data, nil
}

// Close libera el navegador.
func (r *ChromeRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}
