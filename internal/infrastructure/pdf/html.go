package pdf

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/jhoicas/bodega-app/internal/application/export"
)

const reportCSS = `
body { font-family: Helvetica, Arial, sans-serif; font-size: 10px; color: #222; margin: 0; }
h1 { font-size: 16px; color: #00467f; margin: 0 0 4px 0; }
p.subtitle { color: #646464; margin: 0 0 2px 0; }
p.generated { color: #646464; font-size: 8px; margin: 0 0 10px 0; }
table { width: 100%; border-collapse: collapse; }
th { background: #00467f; color: #fff; text-align: left; padding: 4px; }
td { border-bottom: 1px solid #ddd; padding: 4px; vertical-align: top; white-space: pre-line; }
td.barcodes img { height: 40px; margin: 2px 6px 2px 0; }
td.barcodes span.code { font-family: monospace; margin-right: 8px; }
`

// BuildHTML tabla HTML del reporte. Con imágenes pedidas (doc.Images no nil) agrega una
// columna de códigos: PNG en línea como base64, o el código como texto si no hay imagen.
func BuildHTML(doc export.Document) (string, error) {
	d := etree.NewDocument()
	d.WriteSettings.CanonicalEndTags = true

	html := d.CreateElement("html")
	html.CreateAttr("lang", "es")
	head := html.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "UTF-8")
	head.CreateElement("title").SetText(doc.Title)
	head.CreateElement("style").SetText(reportCSS)

	body := html.CreateElement("body")
	body.CreateElement("h1").SetText(doc.Title)
	if doc.Subtitle != "" {
		p := body.CreateElement("p")
		p.CreateAttr("class", "subtitle")
		p.SetText(doc.Subtitle)
	}
	if !doc.GeneratedAt.IsZero() {
		p := body.CreateElement("p")
		p.CreateAttr("class", "generated")
		p.SetText("Generado el " + doc.GeneratedAt.Format("02/01/2006 15:04"))
	}

	withCodes := doc.Images != nil
	table := body.CreateElement("table")
	tr := table.CreateElement("thead").CreateElement("tr")
	for _, c := range doc.Columns {
		tr.CreateElement("th").SetText(c)
	}
	if withCodes {
		tr.CreateElement("th").SetText("Códigos")
	}

	tbody := table.CreateElement("tbody")
	for _, row := range doc.Rows {
		tr := tbody.CreateElement("tr")
		for i := range doc.Columns {
			cell := ""
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			tr.CreateElement("td").SetText(cell)
		}
		if withCodes {
			td := tr.CreateElement("td")
			td.CreateAttr("class", "barcodes")
			for _, code := range row.Barcodes {
				appendCode(td, doc, code)
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	out, err := d.WriteToString()
	if err != nil {
		return "", fmt.Errorf("pdf: serializar HTML: %w", err)
	}
	sb.WriteString(out)
	return sb.String(), nil
}

func appendCode(td *etree.Element, doc export.Document, code string) {
	img, ok := doc.Image(code)
	if !ok {
		span := td.CreateElement("span")
		span.CreateAttr("class", "code")
		span.SetText(code)
		return
	}
	el := td.CreateElement("img")
	el.CreateAttr("alt", code)
	el.CreateAttr("src", "data:image/png;base64,"+base64.StdEncoding.EncodeToString(img))
}
