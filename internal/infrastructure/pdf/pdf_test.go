package pdf

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jhoicas/bodega-app/internal/application/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc(images map[string][]byte) export.Document {
	return export.Document{
		Report: export.Report{
			Title:    "Historial de movimientos",
			Subtitle: "Desde 20/03/2024 hasta 22/03/2024",
			Columns:  []string{"Fecha", "Llegada", "Productos"},
			Rows: []export.Row{
				{Cells: []string{"20/03/2024", "Vitrina <1>", "iPhone\niPad"}, Barcodes: []string{"P1", "P2"}},
			},
			GeneratedAt: time.Date(2024, 3, 22, 10, 0, 0, 0, time.UTC),
		},
		Images: images,
	}
}

// ── HTML ─────────────────────────────────────────────────────────────────────

func TestBuildHTML_TablaEscapadaSinCodigos(t *testing.T) {
	html, err := BuildHTML(sampleDoc(nil))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<th>Productos</th>")
	assert.Contains(t, html, "Vitrina &lt;1")
	assert.Contains(t, html, "Desde 20/03/2024 hasta 22/03/2024")
	assert.NotContains(t, html, "Códigos")
}

func TestBuildHTML_CodigosComoImagenOTexto(t *testing.T) {
	html, err := BuildHTML(sampleDoc(map[string][]byte{"P1": []byte("png")}))
	require.NoError(t, err)

	assert.Contains(t, html, `src="data:image/png;base64,cG5n"`)
	assert.Contains(t, html, `<span class="code">P2</span>`)
}

// ── Maroto ───────────────────────────────────────────────────────────────────

func TestMarotoRenderer_GeneraPDF(t *testing.T) {
	out, err := NewMarotoRenderer("Bodega").Render(context.Background(), sampleDoc(map[string][]byte{}))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestColumnSizes(t *testing.T) {
	assert.Equal(t, []int{4, 4, 4}, columnSizes(3))
	assert.Equal(t, []int{3, 3, 2, 2, 2}, columnSizes(5))
	assert.Len(t, columnSizes(20), 12)
	assert.Nil(t, columnSizes(0))
}
