// Package forms contiene los selectores y formularios de registro: estado local
// controlado, sin estado compartido entre pantallas.
package forms

import (
	"fmt"
	"sync"

	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/catalog"
)

// Option opción de un selector.
type Option struct {
	Label string
	Value string
}

// Dropdown selector con etiqueta y lista de opciones provista por el llamador.
// Solo acepta valores presentes en la lista.
type Dropdown struct {
	Label string

	mu      sync.RWMutex
	options []Option
	value   string
}

func NewDropdown(label string, options []Option) *Dropdown {
	return &Dropdown{Label: label, options: append([]Option(nil), options...)}
}

// StringOptions opciones con etiqueta igual al valor.
func StringOptions(values []string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Label: v, Value: v})
	}
	return out
}

func (d *Dropdown) Options() []Option {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Option(nil), d.options...)
}

func (d *Dropdown) Value() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.value
}

// Select fija el valor. Vacío limpia la selección.
func (d *Dropdown) Select(value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if value != "" && !d.has(value) {
		return domain.NewValidationError(d.Label, fmt.Sprintf("Opción no válida para %s: %s", d.Label, value))
	}
	d.value = value
	return nil
}

// SetOptions reemplaza las opciones; conserva el valor solo si sigue siendo válido.
func (d *Dropdown) SetOptions(options []Option) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.options = append([]Option(nil), options...)
	if !d.has(d.value) {
		d.value = ""
	}
}

func (d *Dropdown) has(value string) bool {
	for _, o := range d.options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// NewCapacitySelector opciones de capacidad según la categoría elegida.
func NewCapacitySelector(category string) *Dropdown {
	return NewDropdown("Capacidad", StringOptions(catalog.CapacityOptions(category)))
}

// UpdateCapacities recalcula las opciones al cambiar la categoría.
func UpdateCapacities(d *Dropdown, category string) {
	d.SetOptions(StringOptions(catalog.CapacityOptions(category)))
}

func NewTypeSelector() *Dropdown {
	return NewDropdown("Tipo", StringOptions(catalog.TypeOptions()))
}

// NewItemKindSelector dispositivos o accesorios.
func NewItemKindSelector() *Dropdown {
	return NewDropdown("Registrar", StringOptions(catalog.ItemKinds()))
}
