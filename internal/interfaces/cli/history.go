package cli

import (
	"context"
	"time"

	"github.com/jhoicas/bodega-app/internal/application/export"
	"github.com/jhoicas/bodega-app/internal/application/history"
	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/filter"
)

// MsgNoRows lista vacía tras aplicar los filtros.
const MsgNoRows = "No hay registros para los filtros indicados"

// Exporter genera y entrega el PDF de un reporte.
type Exporter interface {
	Export(ctx context.Context, report export.Report, opts export.Options) (string, error)
}

var _ Exporter = (*export.Exporter)(nil)

func (a *App) history(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	kind, args := args[0], args[1:]

	fs := a.flags("historial " + kind)
	from := fs.String("desde", "", "fecha inicial (dd/mm/aaaa o aaaa-mm-dd)")
	to := fs.String("hasta", "", "fecha final (dd/mm/aaaa o aaaa-mm-dd)")
	name := fs.String("nombre", "", "filtra por nombre")
	pdfName := fs.String("pdf", "", "exporta el resultado a PDF con este nombre")
	withBarcodes := fs.Bool("barcodes", false, "incluye imágenes de códigos de barras en el PDF")
	exportPDF := fs.Bool("exportar", false, "exporta a PDF con nombre automático")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f := history.Filter{Name: *name}
	var err error
	if f.From, err = filter.ParseDay(*from, time.Local); err != nil {
		return a.fail(domain.NewValidationError("desde", err.Error()), err.Error())
	}
	if f.To, err = filter.ParseDay(*to, time.Local); err != nil {
		return a.fail(domain.NewValidationError("hasta", err.Error()), err.Error())
	}

	report, err := a.load(ctx, kind, f)
	if err != nil {
		return err
	}
	if report.Empty() {
		a.alert(ports.TitleWarning, MsgNoRows)
		return nil
	}
	rows := make([][]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, r.Cells)
	}
	a.table(report.Columns, rows)

	if *pdfName == "" && !*exportPDF {
		return nil
	}
	exp, err := a.exporterFor(ctx)
	if err != nil {
		return a.fail(err, export.MsgExportError)
	}
	report.GeneratedAt = time.Now()
	location, err := exp.Export(ctx, report, export.Options{FileName: *pdfName, WithBarcodes: *withBarcodes})
	if err != nil {
		return a.fail(err, export.MsgExportError)
	}
	a.alert(ports.TitleSuccess, "PDF generado: "+location)
	return nil
}

// load consulta la vista pedida y devuelve la tabla ya filtrada.
// Las vistas alertan por sí mismas cuando el backend falla.
func (a *App) load(ctx context.Context, kind string, f history.Filter) (export.Report, error) {
	switch kind {
	case "movimientos":
		v := history.NewMovementsView(a.movements, a.notify, a.log)
		defer v.Close()
		items, err := v.SetFilter(ctx, f)
		return history.MovementsReport(items, f), err
	case "productos":
		v := history.NewProductsView(a.reports, a.notify, a.log)
		defer v.Close()
		items, err := v.SetFilter(ctx, f)
		return history.ProductsReport(items, f), err
	case "accesorios":
		v := history.NewAccessoriesView(a.reports, a.notify, a.log)
		defer v.Close()
		items, err := v.SetFilter(ctx, f)
		return history.AccessoriesReport(items, f), err
	case "ventas":
		v := history.NewSalesView(a.sales, a.notify, a.log)
		defer v.Close()
		items, err := v.SetFilter(ctx, f)
		return history.SalesReport(items, f), err
	default:
		return export.Report{}, errUsage
	}
}
