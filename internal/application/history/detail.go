package history

import (
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/bodega-app/internal/application/export"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/domain/filter"
	"github.com/jhoicas/bodega-app/internal/domain/inventory"
)

// Field par etiqueta/valor del modal de detalle.
type Field struct {
	Label string
	Value string
}

const dateTimeLayout = "02/01/2006 15:04"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateTimeLayout)
}

// itemNames nombres de los artículos, uno por línea.
func itemNames(items []entity.MovementItem) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		name := it.Name
		if name == "" {
			name = it.Barcode
		}
		names = append(names, name)
	}
	return strings.Join(names, "\n")
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// MovementDetail proyección plana de un movimiento.
func MovementDetail(m entity.Movement) []Field {
	return []Field{
		{"ID", m.ID},
		{"Fecha", formatDate(m.Date)},
		{"Responsable", first(m.Responsible)},
		{"Área de salida", m.SourceArea},
		{"Área de llegada", m.DestinationArea},
		{"Productos", itemNames(m.Products)},
		{"Accesorios", itemNames(m.Accessories)},
		{"Observación", m.Note},
	}
}

func ProductDetail(p entity.Product) []Field {
	return []Field{
		{"Código de barras", p.Barcode},
		{"Nombre", p.Name},
		{"Modelo", p.ModelCode},
		{"Serial", p.Serial},
		{"Color", p.Color},
		{"Capacidad", p.Capacity},
		{"Tipo", p.Type},
		{"Categoría", p.Category},
		{"Precio", export.Money(p.Price)},
		{"Estado", p.Status},
		{"Responsable", p.Responsible},
		{"Ubicación", p.Location},
		{"Fecha de ingreso", formatDate(p.CreatedAt)},
	}
}

func AccessoryDetail(a entity.Accessory) []Field {
	return []Field{
		{"Código de barras", a.Barcode},
		{"Nombre", a.Name},
		{"Modelo", a.ModelCode},
		{"Categoría", a.Category},
		{"Precio", export.Money(a.Price)},
		{"Disponibilidad", a.Availability},
		{"Responsable", a.Responsible},
		{"Ubicación", a.Location},
		{"Fecha de ingreso", formatDate(a.CreatedAt)},
	}
}

func SaleDetail(s entity.Sale) []Field {
	return []Field{
		{"ID", s.ID},
		{"Fecha", formatDate(s.Date)},
		{"Vendedor", s.Seller},
		{"Cliente", s.Customer},
		{"Artículos", itemNames(s.Items)},
		{"Total", export.Money(s.Total)},
	}
}

// ── Reportes ─────────────────────────────────────────────────────────────────

// rangeSubtitle describe el filtro de fechas del reporte.
func rangeSubtitle(f Filter) string {
	switch {
	case f.From != nil && f.To != nil:
		return "Desde " + f.From.Format(filter.DisplayLayout) + " hasta " + f.To.Format(filter.DisplayLayout)
	case f.From != nil:
		return "Desde " + f.From.Format(filter.DisplayLayout)
	case f.To != nil:
		return "Hasta " + f.To.Format(filter.DisplayLayout)
	default:
		return "Todas las fechas"
	}
}

func barcodesOf(items []entity.MovementItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Barcode)
	}
	return out
}

// MovementsReport tabla de la lista de movimientos ya filtrada.
func MovementsReport(items []entity.Movement, f Filter) export.Report {
	r := export.Report{
		Title:    "Historial de movimientos",
		Subtitle: rangeSubtitle(f),
		Columns:  []string{"Fecha", "Salida", "Llegada", "Productos", "Accesorios", "Observación"},
	}
	for _, m := range items {
		codes := append(barcodesOf(m.Products), barcodesOf(m.Accessories)...)
		r.Rows = append(r.Rows, export.Row{
			Cells: []string{
				formatDate(m.Date), m.SourceArea, m.DestinationArea,
				itemNames(m.Products), itemNames(m.Accessories), m.Note,
			},
			Barcodes: codes,
		})
	}
	return r
}

// ProductsReport agrupa las unidades iguales en una fila con su cantidad.
func ProductsReport(items []entity.Product, f Filter) export.Report {
	ptrs := make([]*entity.Product, 0, len(items))
	for i := range items {
		ptrs = append(ptrs, &items[i])
	}
	r := export.Report{
		Title:    "Reporte de productos",
		Subtitle: rangeSubtitle(f),
		Columns:  []string{"Tipo", "Modelo", "Nombre", "Color", "Capacidad", "Cantidad"},
	}
	for _, g := range inventory.GroupProducts(ptrs) {
		r.Rows = append(r.Rows, export.Row{
			Cells:    []string{g.Type, g.ModelCode, g.Name, g.Color, g.Capacity, strconv.Itoa(g.Quantity)},
			Barcodes: g.Barcodes,
		})
	}
	return r
}

func AccessoriesReport(items []entity.Accessory, f Filter) export.Report {
	ptrs := make([]*entity.Accessory, 0, len(items))
	for i := range items {
		ptrs = append(ptrs, &items[i])
	}
	r := export.Report{
		Title:    "Reporte de accesorios",
		Subtitle: rangeSubtitle(f),
		Columns:  []string{"Modelo", "Nombre", "Cantidad", "Fecha"},
	}
	for _, g := range inventory.GroupAccessories(ptrs) {
		r.Rows = append(r.Rows, export.Row{
			Cells:    []string{g.ModelCode, g.Name, strconv.Itoa(g.Quantity), formatDate(g.Date)},
			Barcodes: g.Barcodes,
		})
	}
	return r
}

func SalesReport(items []entity.Sale, f Filter) export.Report {
	r := export.Report{
		Title:    "Reporte de ventas",
		Subtitle: rangeSubtitle(f),
		Columns:  []string{"Fecha", "Vendedor", "Cliente", "Artículos", "Total"},
	}
	for _, s := range items {
		r.Rows = append(r.Rows, export.Row{
			Cells:    []string{formatDate(s.Date), s.Seller, s.Customer, itemNames(s.Items), export.Money(s.Total)},
			Barcodes: barcodesOf(s.Items),
		})
	}
	return r
}
