// Package pdf renderiza los reportes de historial a PDF.
//
// Dos motores:
//
//	chromedp  HTML (etree) → Chrome headless → PDF
//	maroto    PDF nativo, sin navegador; códigos de barras con imagen o generados por maroto
//
// Layout del reporte (ambos motores):
//
//	┌──────────────────────────────────────────────┐
//	│  TÍTULO + rango de fechas + fecha generación │
//	│  ──────────────────────────────────────────  │
//	│  TABLA: columnas del reporte                 │
//	│    (opcional) códigos de barras por fila     │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/bodega-app/internal/application/export"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const (
	gridSize      = 12
	codesPerRow   = 4
	lineHeight    = 4.0
	barcodeHeight = 18.0
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoRenderer implementa export.Renderer con Maroto v2.
type MarotoRenderer struct {
	Author string
}

func NewMarotoRenderer(author string) *MarotoRenderer { return &MarotoRenderer{Author: author} }

func (g *MarotoRenderer) Render(ctx context.Context, doc export.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(doc.Title, true).
		WithAuthor(g.Author, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	sizes := columnSizes(len(doc.Columns))
	m.AddRows(tableHeaderRow(doc.Columns, sizes))
	for _, r := range doc.Rows {
		m.AddRows(tableRow(r, sizes))
		if doc.Images != nil && len(r.Barcodes) > 0 {
			m.AddRows(barcodeRows(doc, r.Barcodes)...)
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.1}))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y rango + fecha de generación debajo.
func headerRow(doc export.Document) core.Row {
	generated := ""
	if !doc.GeneratedAt.IsZero() {
		generated = "Generado el " + doc.GeneratedAt.Format("02/01/2006 15:04")
	}
	return row.New(18).Add(
		col.New(gridSize).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Subtitle, props.Text{Size: 9, Top: 8, Color: colorGray}),
			text.New(generated, props.Text{Size: 7, Top: 13, Color: colorGray}),
		),
	)
}

func tableHeaderRow(columns []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(sizes))
	for i, size := range sizes {
		cols = append(cols, col.New(size).Add(text.New(columns[i], props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Left,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRow: alto según la celda con más líneas.
func tableRow(r export.Row, sizes []int) core.Row {
	lines := 1
	cols := make([]core.Col, 0, len(sizes))
	for i, size := range sizes {
		cell := ""
		if i < len(r.Cells) {
			cell = r.Cells[i]
		}
		if n := strings.Count(cell, "\n") + 1; n > lines {
			lines = n
		}
		cols = append(cols, col.New(size).Add(text.New(cell, props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(float64(lines)*lineHeight + 3).Add(cols...)
}

// barcodeRows: hasta cuatro códigos por fila; imagen si existe, si no maroto dibuja el Code 128.
func barcodeRows(doc export.Document, codes []string) []core.Row {
	var rows []core.Row
	for start := 0; start < len(codes); start += codesPerRow {
		end := start + codesPerRow
		if end > len(codes) {
			end = len(codes)
		}
		cols := make([]core.Col, 0, codesPerRow)
		for _, c := range codes[start:end] {
			cols = append(cols, col.New(gridSize/codesPerRow).Add(barcodeComponent(doc, c)))
		}
		for len(cols) < codesPerRow {
			cols = append(cols, col.New(gridSize/codesPerRow))
		}
		rows = append(rows, row.New(barcodeHeight).Add(cols...))
	}
	return rows
}

func barcodeComponent(doc export.Document, c string) core.Component {
	rect := props.Rect{Percent: 90, Center: true}
	if img, ok := doc.Image(c); ok {
		return image.NewFromBytes(img, extension.Png, rect)
	}
	return code.NewBar(c, props.Barcode{Percent: 90, Center: true})
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnSizes reparte las 12 columnas de la grilla; el sobrante va a las primeras.
func columnSizes(n int) []int {
	if n <= 0 {
		return nil
	}
	if n > gridSize {
		n = gridSize
	}
	base, extra := gridSize/n, gridSize%n
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}
