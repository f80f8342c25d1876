// Package filter contiene los predicados puros que comparten las vistas de historial:
// rango de fechas inclusivo y búsqueda por nombre sin distinguir mayúsculas.
package filter

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// QueryLayout formato de fecha que se envía al backend en desde/hasta.
const QueryLayout = "2006-01-02"

// DisplayLayout formato de fecha que escribe y lee el usuario.
const DisplayLayout = "02/01/2006"

// EndOfDay 23:59:59.999 del día de t, en su misma zona.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// InDateRange indica si ts cae dentro de [from, to] con ambos extremos inclusivos.
// from se compara tal cual (ParseDay ya lo deja a medianoche); el fin se extiende
// hasta el último milisegundo de su día. Un extremo nil no limita.
// Un registro sin fecha (ts cero) solo pasa cuando no hay ningún extremo.
func InDateRange(ts time.Time, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if ts.IsZero() {
		return false
	}
	if from != nil && ts.Before(*from) {
		return false
	}
	if to != nil && ts.After(EndOfDay(*to)) {
		return false
	}
	return true
}

// MatchName indica si name contiene query, sin distinguir mayúsculas (plegado Unicode).
// Una consulta vacía coincide con todo.
func MatchName(name, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(name), fold.String(q))
}

// ParseDay interpreta una fecha escrita por el usuario: dd/mm/yyyy o yyyy-mm-dd.
// Una cadena vacía devuelve nil sin error.
func ParseDay(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range []string{DisplayLayout, QueryLayout} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("fecha inválida %q: use dd/mm/aaaa", s)
}

// QueryDate formatea t para los parámetros desde/hasta; nil produce "".
func QueryDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(QueryLayout)
}
