// Package export genera el PDF de una vista de historial y lo entrega al destino configurado.
package export

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Report tabla ya filtrada, lista para renderizar.
type Report struct {
	Title       string
	Subtitle    string
	Columns     []string
	Rows        []Row
	GeneratedAt time.Time
}

// Row fila de la tabla. Barcodes son los códigos a dibujar bajo la fila cuando se piden imágenes.
type Row struct {
	Cells    []string
	Barcodes []string
}

// Empty indica si no hay filas que exportar.
func (r Report) Empty() bool { return len(r.Rows) == 0 }

// Barcodes códigos únicos del reporte en orden de aparición.
func (r Report) Barcodes() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, row := range r.Rows {
		for _, c := range row.Barcodes {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// Document reporte más las imágenes PNG de códigos de barras ya obtenidas.
// Un código sin imagen se imprime como texto.
type Document struct {
	Report
	Images map[string][]byte
}

// Image PNG del código, si se obtuvo.
func (d Document) Image(code string) ([]byte, bool) {
	img, ok := d.Images[code]
	return img, ok && len(img) > 0
}

// Money formatea un precio con separador de miles y sin decimales: $4.500.000.
func Money(d decimal.Decimal) string {
	s := d.Round(0).Abs().StringFixed(0)
	n := len(s)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if d.Round(0).IsNegative() {
		return "-$" + string(buf)
	}
	return "$" + string(buf)
}
