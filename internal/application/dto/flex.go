package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// El backend no es estricto con los tipos: un mismo campo llega como texto,
// número, objeto o arreglo según el endpoint. Estos tipos absorben esas variantes
// para que el resto de la aplicación trabaje con valores ya normalizados.

// FlexString acepta texto, número o booleano.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	*s = FlexString(strings.Trim(string(data), `"`))
	return nil
}

// FlexDecimal precio como número o texto; vacío y null son cero.
type FlexDecimal struct {
	decimal.Decimal
}

func (d *FlexDecimal) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" || raw == "null" {
		d.Decimal = decimal.Zero
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("precio inválido %q: %w", raw, err)
	}
	d.Decimal = v
	return nil
}

// MarshalJSON emite el precio como número JSON.
func (d FlexDecimal) MarshalJSON() ([]byte, error) {
	return []byte(d.Decimal.String()), nil
}

// NameRef referencia a una persona o categoría: texto, objeto con nombre o arreglo de objetos.
// Conserva todos los nombres en orden.
type NameRef []string

var nameKeys = []string{"nombreResponsable", "nombreCategoria", "nombre", "name", "email"}

func (n *NameRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*n = nil
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != "" {
			*n = NameRef{s}
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		for _, item := range items {
			var one NameRef
			if err := one.UnmarshalJSON(item); err != nil {
				return err
			}
			*n = append(*n, one...)
		}
	case '{':
		var obj map[string]any
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if name := displayName(obj); name != "" {
			*n = NameRef{name}
		}
	}
	return nil
}

// MarshalJSON un solo nombre sale como texto; varios como arreglo.
func (n NameRef) MarshalJSON() ([]byte, error) {
	switch len(n) {
	case 0:
		return []byte(`""`), nil
	case 1:
		return json.Marshal(n[0])
	default:
		return json.Marshal([]string(n))
	}
}

// First primer nombre o "".
func (n NameRef) First() string {
	if len(n) == 0 {
		return ""
	}
	return n[0]
}

func displayName(obj map[string]any) string {
	for _, k := range nameKeys {
		s, ok := obj[k].(string)
		if !ok || s == "" {
			continue
		}
		if k == "nombre" {
			if last, ok := obj["apellido"].(string); ok && last != "" {
				return s + " " + last
			}
		}
		return s
	}
	return ""
}

// FlexTime fecha en RFC 3339, yyyy-mm-dd, dd/mm/yyyy o milisegundos epoch.
type FlexTime struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	t.Time = time.Time{}
	if raw == "" || raw == "null" || raw == `""` {
		return nil
	}
	if raw[0] != '"' {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("fecha inválida %s", raw)
		}
		t.Time = time.UnixMilli(ms).UTC()
		return nil
	}
	parsed, err := ParseTime(strings.Trim(raw, `"`))
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON RFC 3339 con milisegundos; la fecha cero sale como null.
func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
}

// ParseTime interpreta una fecha en cualquiera de los formatos aceptados.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida %q", s)
}

// idTime fecha de creación codificada en un ObjectID de Mongo; cero si id no lo es.
func idTime(id string) time.Time {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return time.Time{}
	}
	return oid.Timestamp().UTC()
}

// firstNonEmpty primer texto no vacío.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// decodeList acepta un arreglo o un objeto que lo envuelve bajo key.
func decodeList(data []byte, key string, dst any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '[' {
		return json.Unmarshal(data, dst)
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	inner, ok := env[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(inner, dst)
}
